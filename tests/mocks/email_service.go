package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, workerName, jobTitle string) error {
	args := m.Called(ctx, toEmail, posterName, workerName, jobTitle)
	return args.Error(0)
}

func (m *EmailService) SendApplicationStatusEmail(ctx context.Context, toEmail, workerName, jobTitle, status string) error {
	args := m.Called(ctx, toEmail, workerName, jobTitle, status)
	return args.Error(0)
}
