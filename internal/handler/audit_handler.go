package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}

func (h *AuditHandler) GetEntityHistory(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	params := getPaginationParams(c)
	result, err := h.auditService.GetEntityHistory(c.Context(), entityType, entityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
