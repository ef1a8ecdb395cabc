package models

import (
	"time"
)

const (
	NotificationTypeEmail = "Email"
	NotificationTypeSMS   = "SMS"
)

const (
	NotificationStatusPending = "Pending"
	NotificationStatusSent    = "Sent"
	NotificationStatusFailed  = "Failed"
)

type Notification struct {
	ID           int       `json:"id"`
	Type         string    `json:"type"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject,omitempty"`
	Body         string    `json:"body"`
	Status       string    `json:"status"`
	SentAt       time.Time `json:"sentAt"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	RetryCount   int       `json:"retryCount"`
}

// Variables, when supplied, fill {placeholder} tokens in the subject and
// body before the notification is recorded and handed to the gateway.
type SendNotificationRequest struct {
	Type      string            `json:"type"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Variables map[string]string `json:"variables"`
}

type SendBulkNotificationRequest struct {
	Type       string            `json:"type"`
	Recipients []string          `json:"recipients"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Variables  map[string]string `json:"variables"`
}

type BulkSendResult struct {
	TotalSent   int    `json:"totalSent"`
	FailedCount int    `json:"failedCount"`
	Status      string `json:"status"`
}

// NotificationTemplate is one of the builtin reminder templates offered
// to the UI; placeholders like {name} are filled in by the client.
type NotificationTemplate struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
