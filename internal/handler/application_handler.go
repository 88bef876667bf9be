package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/service/application"
)

type ApplicationHandler struct {
	appService application.Service
}

func NewApplicationHandler(appService application.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	app, err := h.appService.Apply(c.Context(), userID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return middleware.NotFound("Job not found")
		case errors.Is(err, domain.ErrAlreadyApplied):
			return middleware.Conflict("You have already applied to this job")
		case errors.Is(err, application.ErrJobClosed):
			return middleware.Conflict("Job is no longer open")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// Status reports whether the caller has applied to the job, and the
// application record if so.
func (h *ApplicationHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	applied, app, err := h.appService.HasApplied(c.Context(), userID, jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"has_applied": applied,
		"application": app,
	})
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)
	result, err := h.appService.ListByWorker(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	params := getPaginationParams(c)
	result, err := h.appService.ListByJob(c.Context(), jobID, userID, params)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return middleware.NotFound("Job not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
