package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/repository"
	"pasar-kerja/internal/service/email"
)

var (
	ErrNotRecipient    = errors.New("notification belongs to another user")
	ErrInvalidDecision = errors.New("decision must be ACCEPTED or REJECTED")
)

type Service interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	// List returns the recipient's feed newest first, each entry's
	// status joined from the live application record.
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	// Respond decides a pending application from its APPLICATION
	// notification and fans out RESPONSE notifications.
	Respond(ctx context.Context, posterID, notificationID uuid.UUID, decision domain.ApplicationStatus) (*domain.JobApplication, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	appRepo   repository.ApplicationRepository
	auditRepo repository.AuditLogRepository
	emailSvc  email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	appRepo repository.ApplicationRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo: notifRepo,
		appRepo:   appRepo,
		auditRepo: auditRepo,
		emailSvc:  emailSvc,
	}
}

func (s *service) Create(ctx context.Context, notif *domain.Notification) error {
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, domain.ErrNotificationNotFound
	}
	return notif, nil
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByRecipient(ctx, recipientID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	for i := range notifications {
		notifications[i].Status = s.effectiveStatus(ctx, &notifications[i])
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

// effectiveStatus joins the referenced application's current status at
// read time. Entries without a reference, and entries whose lookup
// fails, report PENDING; a failed lookup is logged only.
func (s *service) effectiveStatus(ctx context.Context, notif *domain.Notification) domain.ApplicationStatus {
	if notif.ApplicationID == nil {
		return domain.ApplicationPending
	}

	app, err := s.appRepo.GetByID(ctx, *notif.ApplicationID)
	if err != nil {
		log.Printf("failed to resolve application %s for notification %s: %v", *notif.ApplicationID, notif.ID, err)
		return domain.ApplicationPending
	}
	if app == nil {
		return domain.ApplicationPending
	}
	return app.Status
}

func (s *service) Respond(ctx context.Context, posterID, notificationID uuid.UUID, decision domain.ApplicationStatus) (*domain.JobApplication, error) {
	if decision != domain.ApplicationAccepted && decision != domain.ApplicationRejected {
		return nil, ErrInvalidDecision
	}

	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if notif == nil {
		return nil, domain.ErrNotificationNotFound
	}
	if notif.RecipientID != posterID {
		return nil, ErrNotRecipient
	}
	if notif.ApplicationID == nil {
		return nil, domain.ErrMissingApplicationRef
	}

	app, err := s.appRepo.GetByID(ctx, *notif.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, domain.ErrApplicationNotFound
	}
	if app.PosterID != posterID {
		return nil, ErrNotRecipient
	}

	// Compare-and-set against PENDING; terminal applications cannot be
	// decided twice.
	if err := s.appRepo.UpdateStatus(ctx, app.ID, decision); err != nil {
		return nil, err
	}
	app.Status = decision

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     posterID,
		Action:     string(decision),
		EntityType: "APPLICATION",
		EntityID:   app.ID,
		NewValue:   app,
	})

	// Fan-out. The status update above is durable; a failure here
	// aborts the remaining sends without undoing it.
	if err := s.sendResponses(ctx, notif, app, decision); err != nil {
		return app, err
	}

	s.emailWorker(app, decision)

	return app, nil
}

func (s *service) sendResponses(ctx context.Context, source *domain.Notification, app *domain.JobApplication, decision domain.ApplicationStatus) error {
	appID := app.ID

	workerNotif := &domain.Notification{
		ID:            uuid.New(),
		RecipientID:   app.WorkerID,
		SenderID:      app.PosterID,
		Type:          domain.NotifResponse,
		ApplicationID: &appID,
		JobDetails:    source.JobDetails,
	}

	switch decision {
	case domain.ApplicationAccepted:
		workerNotif.Title = "Application Accepted"
		workerNotif.Message = fmt.Sprintf("Congratulations! You were accepted for %s", app.JobTitle)
	case domain.ApplicationRejected:
		workerNotif.Title = "Application Update"
		workerNotif.Message = fmt.Sprintf("Your application for %s was not selected", app.JobTitle)
	}

	if err := s.notifRepo.Create(ctx, workerNotif); err != nil {
		return fmt.Errorf("failed to notify worker: %w", err)
	}

	// On acceptance the poster also gets a confirmation entry in their
	// own feed. Rejections do not self-notify.
	if decision == domain.ApplicationAccepted {
		posterNotif := &domain.Notification{
			ID:            uuid.New(),
			RecipientID:   app.PosterID,
			SenderID:      app.PosterID,
			Type:          domain.NotifResponse,
			Title:         "Worker Hired",
			Message:       fmt.Sprintf("You accepted %s for %s", app.WorkerName, app.JobTitle),
			ApplicationID: &appID,
			JobDetails:    source.JobDetails,
			WorkerDetails: source.WorkerDetails,
		}
		if err := s.notifRepo.Create(ctx, posterNotif); err != nil {
			return fmt.Errorf("failed to notify poster: %w", err)
		}
	}

	return nil
}

func (s *service) emailWorker(app *domain.JobApplication, decision domain.ApplicationStatus) {
	if s.emailSvc == nil || app.WorkerEmail == "" {
		return
	}

	go func(toEmail, workerName, jobTitle, status string) {
		ctx := context.Background()
		if err := s.emailSvc.SendApplicationStatusEmail(ctx, toEmail, workerName, jobTitle, status); err != nil {
			log.Printf("failed to send status email to %s: %v", toEmail, err)
		}
	}(app.WorkerEmail, app.WorkerName, app.JobTitle, strings.ToLower(string(decision)))
}

func (s *service) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, recipientID)
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, recipientID)
}

func (s *service) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, recipientID)
}
