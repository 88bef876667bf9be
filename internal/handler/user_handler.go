package handler

import (
	"github.com/gofiber/fiber/v2"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/middleware"
	"pasar-kerja/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
