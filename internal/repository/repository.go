package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Job          JobRepository
	Application  ApplicationRepository
	Notification NotificationRepository
	Session      SessionRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Job:          NewJobRepository(db),
		Application:  NewApplicationRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
