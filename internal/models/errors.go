package models

import (
	"errors"
)

var (
	ErrMemberNotFound       = errors.New("models: member not found")
	ErrCenterNotFound       = errors.New("models: center not found")
	ErrPaymentNotFound      = errors.New("models: payment not found")
	ErrReportNotFound       = errors.New("models: report not found")
	ErrNotificationNotFound = errors.New("models: notification not found")
	ErrUserNotFound         = errors.New("models: user not found")
	ErrSessionNotFound      = errors.New("models: session not found")
	ErrInvalidCredentials   = errors.New("models: invalid credentials")
	ErrDuplicateEmail       = errors.New("models: duplicate email")
	ErrMemberHasPayments    = errors.New("models: member has associated payments")
	ErrCenterHasMembers     = errors.New("models: center has associated members")
	ErrUnknownReportType    = errors.New("models: unknown report type")
)

// ValidationError carries a human-readable message for the caller to fix
// their input. It always maps to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
