package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/service/geo"
	"pasar-kerja/internal/service/job"
)

type JobHandler struct {
	jobService job.Service
}

func NewJobHandler(jobService job.Service) *JobHandler {
	return &JobHandler{jobService: jobService}
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateJobInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.Pay == "" || input.City == "" {
		return middleware.BadRequest("Title, pay and city are required")
	}

	created, err := h.jobService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	found, err := h.jobService.GetByID(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return middleware.NotFound("Job not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	openOnly := c.Query("open_only", "true") != "false"

	result, err := h.jobService.List(c.Context(), openOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *JobHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)
	result, err := h.jobService.ListByPoster(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Nearby lists open jobs ranked by distance from ?location=. An
// optional ?radius_km= trims the list to a radius.
func (h *JobHandler) Nearby(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return middleware.BadRequest("Location is required")
	}

	radiusKm := 0.0
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return middleware.BadRequest("Invalid radius")
		}
		radiusKm = parsed
	}

	jobs, err := h.jobService.Nearby(c.Context(), location, radiusKm)
	if err != nil {
		if errors.Is(err, geo.ErrLocationNotFound) {
			return middleware.NotFound("Location could not be resolved")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"location": location,
		"jobs":     jobs,
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	var input domain.UpdateJobInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.jobService.Update(c.Context(), jobID, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return middleware.NotFound("Job not found")
		case errors.Is(err, job.ErrNotJobOwner):
			return middleware.Forbidden("Job belongs to another poster")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.BadRequest("Invalid job ID")
	}

	if err := h.jobService.Delete(c.Context(), jobID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return middleware.NotFound("Job not found")
		case errors.Is(err, job.ErrNotJobOwner):
			return middleware.Forbidden("Job belongs to another poster")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
