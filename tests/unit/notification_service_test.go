package unit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pasar-kerja/internal/domain"
	"pasar-kerja/internal/service/notification"
	"pasar-kerja/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationService_Respond(t *testing.T) {
	ctx := context.Background()
	posterID := uuid.New()
	workerID := uuid.New()
	appID := uuid.New()
	notifID := uuid.New()

	jobDetails, _ := json.Marshal(domain.JobSnapshot{Title: "Warehouse Helper", Pay: "500/day", City: "Pune"})
	workerDetails, _ := json.Marshal(domain.WorkerSnapshot{ID: workerID, Name: "Asha Patil"})

	sourceNotif := func() *domain.Notification {
		id := appID
		return &domain.Notification{
			ID:            notifID,
			RecipientID:   posterID,
			SenderID:      workerID,
			Type:          domain.NotifApplication,
			ApplicationID: &id,
			JobDetails:    jobDetails,
			WorkerDetails: workerDetails,
		}
	}

	pendingApp := func() *domain.JobApplication {
		return &domain.JobApplication{
			ID:          appID,
			JobID:       uuid.New(),
			WorkerID:    workerID,
			PosterID:    posterID,
			WorkerName:  "Asha Patil",
			WorkerEmail: "worker@example.com",
			JobTitle:    "Warehouse Helper",
			Status:      domain.ApplicationPending,
		}
	}

	newService := func() (notification.Service, *mocks.NotificationRepository, *mocks.ApplicationRepository, *mocks.AuditLogRepository, *mocks.EmailService) {
		notifRepo := new(mocks.NotificationRepository)
		appRepo := new(mocks.ApplicationRepository)
		auditRepo := new(mocks.AuditLogRepository)
		emailSvc := new(mocks.EmailService)
		svc := notification.NewService(notifRepo, appRepo, auditRepo, emailSvc)
		return svc, notifRepo, appRepo, auditRepo, emailSvc
	}

	t.Run("Accept - Notifies Worker And Poster", func(t *testing.T) {
		svc, notifRepo, appRepo, auditRepo, emailSvc := newService()

		notifRepo.On("GetByID", ctx, notifID).Return(sourceNotif(), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(pendingApp(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationAccepted).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == "ACCEPTED" && l.UserID == posterID
		})).Return(nil).Once()

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == workerID &&
				n.Type == domain.NotifResponse &&
				n.Title == "Application Accepted" &&
				*n.ApplicationID == appID
		})).Return(nil).Once()
		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == posterID &&
				n.Type == domain.NotifResponse &&
				n.Title == "Worker Hired"
		})).Return(nil).Once()

		emailSvc.On("SendApplicationStatusEmail", mock.Anything, "worker@example.com", "Asha Patil", "Warehouse Helper", "accepted").Return(nil).Maybe()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationAccepted)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationAccepted, app.Status)
		notifRepo.AssertExpectations(t)
		appRepo.AssertExpectations(t)
	})

	t.Run("Reject - Notifies Worker Only", func(t *testing.T) {
		svc, notifRepo, appRepo, auditRepo, emailSvc := newService()

		notifRepo.On("GetByID", ctx, notifID).Return(sourceNotif(), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(pendingApp(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationRejected).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == workerID && n.Title == "Application Update"
		})).Return(nil).Once()

		emailSvc.On("SendApplicationStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "rejected").Return(nil).Maybe()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationRejected)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationRejected, app.Status)
		notifRepo.AssertExpectations(t)
		notifRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Invalid Decision", func(t *testing.T) {
		svc, notifRepo, _, _, _ := newService()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationPending)

		assert.Nil(t, app)
		assert.ErrorIs(t, err, notification.ErrInvalidDecision)
		notifRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Notification Not Found", func(t *testing.T) {
		svc, notifRepo, _, _, _ := newService()

		notifRepo.On("GetByID", ctx, notifID).Return(nil, nil).Once()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationAccepted)

		assert.Nil(t, app)
		assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
	})

	t.Run("Not Recipient", func(t *testing.T) {
		svc, notifRepo, _, _, _ := newService()

		notifRepo.On("GetByID", ctx, notifID).Return(sourceNotif(), nil).Once()

		app, err := svc.Respond(ctx, uuid.New(), notifID, domain.ApplicationAccepted)

		assert.Nil(t, app)
		assert.ErrorIs(t, err, notification.ErrNotRecipient)
	})

	t.Run("Missing Application Reference", func(t *testing.T) {
		svc, notifRepo, _, _, _ := newService()

		orphan := sourceNotif()
		orphan.ApplicationID = nil
		notifRepo.On("GetByID", ctx, notifID).Return(orphan, nil).Once()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationAccepted)

		assert.Nil(t, app)
		assert.ErrorIs(t, err, domain.ErrMissingApplicationRef)
	})

	t.Run("Already Decided", func(t *testing.T) {
		svc, notifRepo, appRepo, _, _ := newService()

		decided := pendingApp()
		decided.Status = domain.ApplicationAccepted

		notifRepo.On("GetByID", ctx, notifID).Return(sourceNotif(), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(decided, nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationRejected).Return(domain.ErrAlreadyDecided).Once()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationRejected)

		assert.Nil(t, app)
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
		notifRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Worker Notification Failure Surfaces After Update", func(t *testing.T) {
		svc, notifRepo, appRepo, auditRepo, _ := newService()

		notifRepo.On("GetByID", ctx, notifID).Return(sourceNotif(), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(pendingApp(), nil).Once()
		appRepo.On("UpdateStatus", ctx, appID, domain.ApplicationAccepted).Return(nil).Once()
		auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()
		notifRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(errors.New("boom")).Once()

		app, err := svc.Respond(ctx, posterID, notifID, domain.ApplicationAccepted)

		// The decision itself is durable even though the fan-out failed.
		assert.Error(t, err)
		assert.NotNil(t, app)
		assert.Equal(t, domain.ApplicationAccepted, app.Status)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	notifID := uuid.New()
	recipientID := uuid.New()

	t.Run("Scoped To Caller", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(notifRepo, nil, nil, nil)

		// The update is keyed by (id, recipient) so one user can never
		// mark another user's notification read.
		notifRepo.On("MarkAsRead", ctx, notifID, recipientID).Return(nil).Once()

		err := svc.MarkAsRead(ctx, notifID, recipientID)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()
	appID := uuid.New()
	params := domain.DefaultPagination()

	t.Run("Joins Live Application Status", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		appRepo := new(mocks.ApplicationRepository)
		svc := notification.NewService(notifRepo, appRepo, nil, nil)

		id := appID
		feed := []domain.Notification{
			{ID: uuid.New(), RecipientID: recipientID, Type: domain.NotifApplication, ApplicationID: &id},
			{ID: uuid.New(), RecipientID: recipientID, Type: domain.NotifResponse},
		}

		notifRepo.On("ListByRecipient", ctx, recipientID, false, params).Return(feed, int64(2), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(&domain.JobApplication{ID: appID, Status: domain.ApplicationAccepted}, nil).Once()

		resp, err := svc.List(ctx, recipientID, false, params)

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, domain.ApplicationAccepted, resp.Data[0].Status)
		// No application reference reads as PENDING.
		assert.Equal(t, domain.ApplicationPending, resp.Data[1].Status)
	})

	t.Run("Lookup Failure Defaults To Pending", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		appRepo := new(mocks.ApplicationRepository)
		svc := notification.NewService(notifRepo, appRepo, nil, nil)

		id := appID
		feed := []domain.Notification{
			{ID: uuid.New(), RecipientID: recipientID, Type: domain.NotifApplication, ApplicationID: &id},
		}

		notifRepo.On("ListByRecipient", ctx, recipientID, false, params).Return(feed, int64(1), nil).Once()
		appRepo.On("GetByID", ctx, appID).Return(nil, errors.New("timeout")).Once()

		resp, err := svc.List(ctx, recipientID, false, params)

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationPending, resp.Data[0].Status)
	})
}
