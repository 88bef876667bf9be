package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"pasar-kerja/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, workerName, jobTitle string) error
	SendApplicationStatusEmail(ctx context.Context, toEmail, workerName, jobTitle, status string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var layoutTmpl = template.Must(template.New("email").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Body}}</p>
  {{if .Link}}<p><a href="{{.Link}}">{{.LinkLabel}}</a></p>{{end}}
  <p style="color:#6b7280;font-size:12px">Pasar Kerja</p>
</div>`))

type emailData struct {
	Title     string
	Name      string
	Body      string
	Link      string
	LinkLabel string
}

func (s *service) sendEmail(toEmail, subject string, data emailData) error {
	var body bytes.Buffer
	if err := layoutTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pasar Kerja <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	return s.sendEmail(toEmail, "Welcome to Pasar Kerja", emailData{
		Title:     "Welcome to Pasar Kerja",
		Name:      fullName,
		Body:      "Your account is ready. Log in to browse jobs near you or post your first listing.",
		Link:      fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkLabel: "Log in",
	})
}

func (s *service) SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, workerName, jobTitle string) error {
	return s.sendEmail(toEmail, "New application for "+jobTitle, emailData{
		Title:     "New Application",
		Name:      posterName,
		Body:      fmt.Sprintf("%s applied for your job \"%s\". Review the application in your notifications.", workerName, jobTitle),
		Link:      fmt.Sprintf("https://%s/notifications", s.config.Domain),
		LinkLabel: "View notifications",
	})
}

func (s *service) SendApplicationStatusEmail(ctx context.Context, toEmail, workerName, jobTitle, status string) error {
	return s.sendEmail(toEmail, fmt.Sprintf("Your application for %s was %s", jobTitle, status), emailData{
		Title:     "Application Update",
		Name:      workerName,
		Body:      fmt.Sprintf("Your application for \"%s\" was %s.", jobTitle, status),
		Link:      fmt.Sprintf("https://%s/applications", s.config.Domain),
		LinkLabel: "View applications",
	})
}
