package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/model"
	"github.com/lifewood/careers-api/internal/service"
	"github.com/lifewood/careers-api/internal/util"
)

var ErrNoIDs = errors.New("no ids provided")

// ApplicationStore is the repository surface the usecase needs.
type ApplicationStore interface {
	Create(app *model.Application) error
	List(page, limit int, status string) ([]model.Application, int64, error)
	FindByID(id uuid.UUID) (*model.Application, error)
	Update(id uuid.UUID, fields map[string]any) (*model.Application, error)
	Delete(id uuid.UUID) error
	BulkDelete(ids []uuid.UUID) (int64, error)
}

type ApplicationUsecase struct {
	repo ApplicationStore
	mail service.MailServiceInterface
}

func NewApplicationUsecase(repo ApplicationStore, mail service.MailServiceInterface) *ApplicationUsecase {
	return &ApplicationUsecase{repo: repo, mail: mail}
}

// Submit handles a public form submission. Status is always forced to
// pending and timestamps are stamped here, never trusted from the client.
func (uc *ApplicationUsecase) Submit(req dto.CreateApplicationRequest) (*model.Application, error) {
	now := time.Now()
	app := model.Application{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Age:               req.Age,
		Degree:            req.Degree,
		DegreeOther:       req.DegreeOther,
		Course:            req.Course,
		CourseOther:       req.CourseOther,
		ExperienceYears:   req.ExperienceYears,
		ExperienceDetails: req.ExperienceDetails,
		Project:           req.Project,
		ResumeFilename:    req.ResumeFilename,
		Status:            model.StatusPending,
		SubmittedAt:       now,
		UpdatedAt:         now,
	}
	app.Normalize()
	if errs := app.Validate(true); len(errs) > 0 {
		return nil, util.NewFormError("Invalid application", errs)
	}
	if err := uc.repo.Create(&app); err != nil {
		return nil, err
	}

	// Fire-and-forget; the applicant's 201 never waits on SMTP.
	go uc.mail.SendReceived(&app)

	return &app, nil
}

func (uc *ApplicationUsecase) List(page, limit int, status string) ([]model.Application, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return uc.repo.List(page, limit, status)
}

func (uc *ApplicationUsecase) Get(id uuid.UUID) (*model.Application, error) {
	return uc.repo.FindByID(id)
}

// Update applies a partial edit. Absent fields keep their stored values,
// so a status-only transition or an edit without a new resume leaves the
// rest of the record untouched. A decision status with an email on file
// triggers the decision notification as a side effect.
func (uc *ApplicationUsecase) Update(id uuid.UUID, req dto.UpdateApplicationRequest) (*model.Application, error) {
	current, err := uc.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	merged := *current
	fields := map[string]any{}
	setString := func(col string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			fields[col] = *v
		}
	}
	setInt := func(col string, dst *int, v *int) {
		if v != nil {
			*dst = *v
			fields[col] = *v
		}
	}
	setString("first_name", &merged.FirstName, req.FirstName)
	setString("last_name", &merged.LastName, req.LastName)
	setString("email", &merged.Email, req.Email)
	setInt("age", &merged.Age, req.Age)
	setString("degree", &merged.Degree, req.Degree)
	setString("degree_other", &merged.DegreeOther, req.DegreeOther)
	setString("course", &merged.Course, req.Course)
	setString("course_other", &merged.CourseOther, req.CourseOther)
	setInt("experience_years", &merged.ExperienceYears, req.ExperienceYears)
	setString("experience_details", &merged.ExperienceDetails, req.ExperienceDetails)
	setString("project", &merged.Project, req.Project)
	setString("resume_filename", &merged.ResumeFilename, req.ResumeFilename)

	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, util.NewFormError("Invalid application", map[string]string{"status": "Unknown status."})
		}
		merged.Status = *req.Status
		fields["status"] = *req.Status
	}

	merged.Normalize()
	fields["degree_other"] = merged.DegreeOther
	fields["course_other"] = merged.CourseOther
	if errs := merged.Validate(false); len(errs) > 0 {
		return nil, util.NewFormError("Invalid application", errs)
	}
	fields["updated_at"] = time.Now()

	updated, err := uc.repo.Update(id, fields)
	if err != nil {
		return nil, err
	}

	if updated.Email != "" &&
		(updated.Status == model.StatusApproved || updated.Status == model.StatusRejected) {
		go uc.mail.SendDecision(updated)
	}
	return updated, nil
}

func (uc *ApplicationUsecase) Delete(id uuid.UUID) error {
	return uc.repo.Delete(id)
}

func (uc *ApplicationUsecase) BulkDelete(ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	return uc.repo.BulkDelete(ids)
}
