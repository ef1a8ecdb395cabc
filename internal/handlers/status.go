package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"membroBack/internal/models"
)

// errorStatus maps service errors to HTTP status codes so every handler
// answers with the same codes for the same failures.
func errorStatus(err error) int {
	switch {
	case models.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, models.ErrCenterNotFound),
		errors.Is(err, models.ErrPaymentNotFound),
		errors.Is(err, models.ErrReportNotFound),
		errors.Is(err, models.ErrNotificationNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrMemberHasPayments),
		errors.Is(err, models.ErrCenterHasMembers):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrUnknownReportType):
		return http.StatusBadRequest
	case isForeignKeyConstraintError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseDateParam accepts RFC3339 timestamps and plain dates.
func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
