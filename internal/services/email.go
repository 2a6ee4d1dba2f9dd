package services

import (
	"context"
	"fmt"

	"eventlottery/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendNotification renders the category's template and sends it to data.Email.
func (s *emailService) SendNotification(ctx context.Context, category domain.NotificationCategory, data *domain.NotificationEmailData) error {
	if data == nil || data.Email == "" {
		return fmt.Errorf("notification email needs a recipient: %w", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(string(category), data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", category, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", category, err)
	}
	return nil
}
