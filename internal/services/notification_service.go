package services

import (
	"context"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"membroBack/internal/models"
	"membroBack/internal/repositories"
)

// Mailer delivers a rendered notification to an external gateway. SMS has no
// gateway wired yet, so SMS notifications are recorded but never delivered.
type Mailer interface {
	Send(recipient, subject, body string) error
}

type SMTPMailer struct {
	Dialer *gomail.Dialer
	From   string
}

func (m *SMTPMailer) Send(recipient, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.Dialer.DialAndSend(msg)
}

type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	Mailer           Mailer
}

var validNotificationTypes = map[string]bool{
	models.NotificationTypeEmail: true,
	models.NotificationTypeSMS:   true,
}

// RenderTemplate substitutes {key} placeholders in text with the supplied
// variables. Unknown placeholders are left untouched.
func RenderTemplate(text string, variables map[string]string) string {
	for key, value := range variables {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return text
}

// deliver hands a notification to the mailer and reports the resulting
// status. A nil mailer or an SMS notification is recorded as sent without
// an actual delivery attempt.
func deliver(m Mailer, n models.Notification) (string, string) {
	if m == nil || n.Type != models.NotificationTypeEmail {
		return models.NotificationStatusSent, ""
	}
	if err := m.Send(n.Recipient, n.Subject, n.Body); err != nil {
		return models.NotificationStatusFailed, err.Error()
	}
	return models.NotificationStatusSent, ""
}

func validateNotification(notifType, recipient, body string) error {
	if !validNotificationTypes[notifType] {
		return models.NewValidationError("type must be Email or SMS")
	}
	if strings.TrimSpace(recipient) == "" {
		return models.NewValidationError("recipient is required")
	}
	if strings.TrimSpace(body) == "" {
		return models.NewValidationError("body is required")
	}
	return nil
}

func (s *NotificationService) SendNotification(ctx context.Context, req models.SendNotificationRequest) (models.Notification, error) {
	if err := validateNotification(req.Type, req.Recipient, req.Body); err != nil {
		return models.Notification{}, err
	}

	notification := models.Notification{
		Type:      req.Type,
		Recipient: strings.TrimSpace(req.Recipient),
		Subject:   RenderTemplate(req.Subject, req.Variables),
		Body:      RenderTemplate(req.Body, req.Variables),
		SentAt:    time.Now(),
	}
	notification.Status, notification.ErrorMessage = deliver(s.Mailer, notification)

	return s.NotificationRepo.InsertNotification(ctx, notification)
}

// SendBulk fans one message out to every recipient. Delivery failures are
// recorded per notification and counted; they do not fail the request.
func (s *NotificationService) SendBulk(ctx context.Context, req models.SendBulkNotificationRequest) (models.BulkSendResult, error) {
	if err := validateNotification(req.Type, "-", req.Body); err != nil {
		return models.BulkSendResult{}, err
	}
	if len(req.Recipients) == 0 {
		return models.BulkSendResult{}, models.NewValidationError("recipients is required")
	}

	result := models.BulkSendResult{Status: "completed"}
	for _, recipient := range req.Recipients {
		if strings.TrimSpace(recipient) == "" {
			result.FailedCount++
			continue
		}
		notification := models.Notification{
			Type:      req.Type,
			Recipient: strings.TrimSpace(recipient),
			Subject:   RenderTemplate(req.Subject, req.Variables),
			Body:      RenderTemplate(req.Body, req.Variables),
			SentAt:    time.Now(),
		}
		notification.Status, notification.ErrorMessage = deliver(s.Mailer, notification)
		if _, err := s.NotificationRepo.InsertNotification(ctx, notification); err != nil {
			return result, err
		}
		if notification.Status == models.NotificationStatusFailed {
			result.FailedCount++
		} else {
			result.TotalSent++
		}
	}
	return result, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.NotificationRepo.ListNotifications(ctx)
}

func (s *NotificationService) Templates() []models.NotificationTemplate {
	return []models.NotificationTemplate{
		{
			ID:      1,
			Name:    "Payment Reminder",
			Type:    models.NotificationTypeEmail,
			Subject: "Payment reminder",
			Body:    "Hello {name}, your payment of {amount} is due on {dueDate}. Please settle it to keep your membership active.",
		},
		{
			ID:      2,
			Name:    "Welcome",
			Type:    models.NotificationTypeEmail,
			Subject: "Welcome to {centerName}",
			Body:    "Hello {name}, welcome aboard! Your membership at {centerName} is now active.",
		},
		{
			ID:      3,
			Name:    "Payment Reminder SMS",
			Type:    models.NotificationTypeSMS,
			Subject: "",
			Body:    "{name}, your payment of {amount} is due on {dueDate}.",
		},
	}
}
