package repository

import (
	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/model"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	return r.db.Create(app).Error
}

// List returns a page of applications newest-first, optionally restricted
// to one status, plus the total matching count for pagination.
func (r *ApplicationRepository) List(page, limit int, status string) ([]model.Application, int64, error) {
	var apps []model.Application
	var total int64

	q := r.db.Model(&model.Application{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("submitted_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error
	return apps, total, err
}

func (r *ApplicationRepository) FindByID(id uuid.UUID) (*model.Application, error) {
	var app model.Application
	err := r.db.First(&app, "id = ?", id).Error
	return &app, err
}

// Update applies a column map so absent fields stay untouched.
func (r *ApplicationRepository) Update(id uuid.UUID, fields map[string]any) (*model.Application, error) {
	if err := r.db.Model(&model.Application{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *ApplicationRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepository) BulkDelete(ids []uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Application{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}
