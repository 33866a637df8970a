package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lifewood/careers-api/internal/dto"
	"github.com/lifewood/careers-api/internal/middleware"
	"github.com/lifewood/careers-api/internal/response"
	"github.com/lifewood/careers-api/internal/service"
	"github.com/lifewood/careers-api/internal/usecase"
	"github.com/lifewood/careers-api/internal/util"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	uc      *usecase.ApplicationUsecase
	storage service.StorageServiceInterface
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase, storage service.StorageServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, storage: storage}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/applications", middleware.RateLimiter(5, 1*time.Minute), h.Create)
	app.Get("/api/applications", h.List)
	app.Get("/api/applications/:id", h.Get)
	app.Put("/api/applications/:id", h.Update)
	app.Delete("/api/applications/:id", h.Delete)
	app.Post("/api/applications/bulk-delete", h.BulkDelete)
	app.Get("/api/resumes/url", h.ResumeURL)
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	app, err := h.uc.Submit(req)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, fiber.StatusBadRequest, formErr.Message, err)
		}
		return util.ErrorResponse(c, fiber.StatusInternalServerError, fmt.Sprintf("Database error: %s", err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateApplicationResponse{
		Success:       true,
		Message:       "Application submitted successfully",
		ApplicationID: app.ID,
	})
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := c.Query("status")

	apps, total, err := h.uc.List(page, limit, status)
	if err != nil {
		return util.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch applications", err)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"pagination":   response.NewPagination(page, limit, total),
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid application id")
	}
	app, err := h.uc.Get(id)
	if err != nil {
		return util.ErrorResponse(c, fiber.StatusNotFound, "Application not found")
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid application id")
	}
	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	updated, err := h.uc.Update(id, req)
	if err != nil {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, fiber.StatusBadRequest, formErr.Message, err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrorResponse(c, fiber.StatusNotFound, "Application not found")
		}
		return util.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update application", err)
	}
	return c.JSON(updated)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid application id")
	}
	if err := h.uc.Delete(id); err != nil {
		return util.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete application", err)
	}
	return c.JSON(fiber.Map{"message": "Application deleted successfully"})
}

func (h *ApplicationHandler) BulkDelete(c *fiber.Ctx) error {
	var req dto.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	deleted, err := h.uc.BulkDelete(req.IDs)
	if err != nil {
		if errors.Is(err, usecase.ErrNoIDs) {
			return util.ErrorResponse(c, fiber.StatusBadRequest, "No ids provided")
		}
		return util.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete applications", err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Deleted %d applications", deleted)})
}

// ResumeURL resolves a stored resume key to its public URL. No content is
// proxied; the client opens the URL directly.
func (h *ApplicationHandler) ResumeURL(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return util.ErrorResponse(c, fiber.StatusBadRequest, "Resume key is required")
	}
	return c.JSON(fiber.Map{"url": h.storage.PublicURL(key)})
}
