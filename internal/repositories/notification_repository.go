package repositories

import (
	"context"
	"database/sql"

	"membroBack/internal/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r *NotificationRepository) InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	query := `
		INSERT INTO notifications
			(type, recipient, subject, body, status, sent_at, error_message, retry_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		n.Type, n.Recipient, n.Subject, n.Body, n.Status, n.SentAt,
		n.ErrorMessage, n.RetryCount,
	)
	if err != nil {
		return models.Notification{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Notification{}, err
	}
	n.ID = int(id)
	return n, nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, type, recipient, subject, body, status, sent_at,
		       error_message, retry_count
		FROM notifications
		ORDER BY sent_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var (
			n        models.Notification
			subject  sql.NullString
			errorMsg sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.Type, &n.Recipient, &subject, &n.Body, &n.Status, &n.SentAt, &errorMsg, &n.RetryCount); err != nil {
			return nil, err
		}
		n.Subject = subject.String
		n.ErrorMessage = errorMsg.String
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
