package service

import (
	"github.com/redis/go-redis/v9"

	"pasar-kerja/internal/config"
	"pasar-kerja/internal/repository"
	"pasar-kerja/internal/service/application"
	"pasar-kerja/internal/service/audit"
	"pasar-kerja/internal/service/auth"
	"pasar-kerja/internal/service/email"
	"pasar-kerja/internal/service/geo"
	"pasar-kerja/internal/service/job"
	"pasar-kerja/internal/service/notification"
	"pasar-kerja/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Job          job.Service
	Application  application.Service
	Notification notification.Service
	Email        email.Service
	Audit        audit.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	userService := user.NewService(repos.User)
	auditService := audit.NewService(repos.AuditLog)

	geocoder := geo.NewHTTPGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderTimeout)
	resolver := geo.NewResolver(geocoder, redisClient, cfg.GeocodeCacheTTL)

	jobService := job.NewService(repos.Job, repos.AuditLog, redisClient, resolver)
	applicationService := application.NewService(repos.Application, repos.Job, repos.User, repos.Notification, repos.AuditLog, emailService)
	notificationService := notification.NewService(repos.Notification, repos.Application, repos.AuditLog, emailService)

	return &Services{
		Auth:         authService,
		User:         userService,
		Job:          jobService,
		Application:  applicationService,
		Notification: notificationService,
		Email:        emailService,
		Audit:        auditService,
	}
}
