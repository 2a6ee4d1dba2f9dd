package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NotificationEmailData holds data for every notification email template.
type NotificationEmailData struct {
	Email     string
	EventName string
	Title     string
	Body      string
}

// EmailService sends notification emails rendered from the category's template.
type EmailService interface {
	SendNotification(ctx context.Context, category NotificationCategory, data *NotificationEmailData) error
}
