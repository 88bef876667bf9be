package handler

import (
	"github.com/gofiber/fiber/v2"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Job:          NewJobHandler(services.Job),
		Application:  NewApplicationHandler(services.Application),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
