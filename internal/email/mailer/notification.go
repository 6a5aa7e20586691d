// internal/email/mailer/notification.go
package mailer

import "github.com/civicworks/volunteerhub/internal/email"

// NotificationTemplateData contains data for the notification email template
type NotificationTemplateData struct {
	RecipientName string
	Subject       string
	Body          string
}

// SendNotificationEmail delivers a platform notification over email.
func SendNotificationEmail(s *email.Service, to, recipientName, subject, body string) error {
	templateData := NotificationTemplateData{
		RecipientName: recipientName,
		Subject:       subject,
		Body:          body,
	}

	fromName := "VolunteerHub"

	emailData := email.EmailData{
		To:           to,
		FromName:     fromName,
		Subject:      subject,
		TemplateName: "notification",
		TemplateData: templateData,
	}

	return s.SendEmail(emailData)
}
