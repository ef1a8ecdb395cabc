package services

import (
	"errors"
	"testing"

	"membroBack/internal/models"
)

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) Send(recipient, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		variables map[string]string
		want      string
	}{
		{
			"fills placeholders",
			"Hello {name}, {amount} is due on {dueDate}.",
			map[string]string{"name": "Maria", "amount": "150.00", "dueDate": "2025-01-15"},
			"Hello Maria, 150.00 is due on 2025-01-15.",
		},
		{
			"unknown placeholders stay",
			"Hello {name}, see {link}.",
			map[string]string{"name": "Maria"},
			"Hello Maria, see {link}.",
		},
		{
			"nil variables",
			"Hello {name}.",
			nil,
			"Hello {name}.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.text, tt.variables); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDeliver(t *testing.T) {
	email := models.Notification{
		Type:      models.NotificationTypeEmail,
		Recipient: "maria@example.com",
		Subject:   "Payment reminder",
		Body:      "hello",
	}

	t.Run("email success", func(t *testing.T) {
		mailer := &stubMailer{}
		status, errMsg := deliver(mailer, email)
		if status != models.NotificationStatusSent || errMsg != "" {
			t.Fatalf("expected sent, got %s / %q", status, errMsg)
		}
		if len(mailer.sent) != 1 || mailer.sent[0] != "maria@example.com" {
			t.Fatalf("mailer not invoked: %v", mailer.sent)
		}
	})

	t.Run("email failure is recorded", func(t *testing.T) {
		mailer := &stubMailer{err: errors.New("dial tcp: connection refused")}
		status, errMsg := deliver(mailer, email)
		if status != models.NotificationStatusFailed {
			t.Fatalf("expected failed, got %s", status)
		}
		if errMsg == "" {
			t.Fatalf("expected error message")
		}
	})

	t.Run("sms skips the mailer", func(t *testing.T) {
		mailer := &stubMailer{err: errors.New("should not be called")}
		sms := email
		sms.Type = models.NotificationTypeSMS
		status, errMsg := deliver(mailer, sms)
		if status != models.NotificationStatusSent || errMsg != "" {
			t.Fatalf("expected sent, got %s / %q", status, errMsg)
		}
	})

	t.Run("nil mailer records as sent", func(t *testing.T) {
		status, _ := deliver(nil, email)
		if status != models.NotificationStatusSent {
			t.Fatalf("expected sent, got %s", status)
		}
	})
}

func TestValidateNotification(t *testing.T) {
	if err := validateNotification(models.NotificationTypeEmail, "maria@example.com", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateNotification("Pigeon", "maria@example.com", "hello"); !models.IsValidation(err) {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
	if err := validateNotification(models.NotificationTypeSMS, " ", "hello"); !models.IsValidation(err) {
		t.Fatalf("expected validation error for blank recipient, got %v", err)
	}
	if err := validateNotification(models.NotificationTypeSMS, "+5511999", ""); !models.IsValidation(err) {
		t.Fatalf("expected validation error for blank body, got %v", err)
	}
}

func TestTemplates(t *testing.T) {
	svc := &NotificationService{}
	templates := svc.Templates()
	if len(templates) == 0 {
		t.Fatal("expected builtin templates")
	}
	for _, tpl := range templates {
		if tpl.Type != models.NotificationTypeEmail && tpl.Type != models.NotificationTypeSMS {
			t.Errorf("template %q has unknown type %q", tpl.Name, tpl.Type)
		}
		if tpl.Body == "" {
			t.Errorf("template %q has an empty body", tpl.Name)
		}
	}
}
