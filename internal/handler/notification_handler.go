package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notifService.List(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) Respond(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	var input struct {
		Decision string `json:"decision"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	app, err := h.notifService.Respond(c.Context(), userID, notifID, domain.ApplicationStatus(input.Decision))
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrInvalidDecision):
			return middleware.BadRequest("Decision must be ACCEPTED or REJECTED")
		case errors.Is(err, domain.ErrNotificationNotFound):
			return middleware.NotFound("Notification not found")
		case errors.Is(err, notification.ErrNotRecipient):
			return middleware.Forbidden("Notification belongs to another user")
		case errors.Is(err, domain.ErrMissingApplicationRef):
			return middleware.BadRequest("Notification has no application reference")
		case errors.Is(err, domain.ErrApplicationNotFound):
			return middleware.NotFound("Application not found")
		case errors.Is(err, domain.ErrAlreadyDecided):
			return middleware.Conflict("Application has already been decided")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
