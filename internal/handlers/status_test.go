package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"membroBack/internal/models"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.NewValidationError("amount must be greater than zero"), http.StatusBadRequest},
		{"member not found", models.ErrMemberNotFound, http.StatusNotFound},
		{"payment not found", models.ErrPaymentNotFound, http.StatusNotFound},
		{"duplicate email", models.ErrDuplicateEmail, http.StatusConflict},
		{"member has payments", models.ErrMemberHasPayments, http.StatusConflict},
		{"center has members", models.ErrCenterHasMembers, http.StatusConflict},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown report type", models.ErrUnknownReportType, http.StatusBadRequest},
		{"generic", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorStatus(tt.err); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestParseDateParam(t *testing.T) {
	t.Run("empty returns nil", func(t *testing.T) {
		got, err := parseDateParam("")
		if err != nil || got != nil {
			t.Fatalf("expected nil, nil; got %v, %v", got, err)
		}
	})

	t.Run("plain date", func(t *testing.T) {
		got, err := parseDateParam("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDateParam("2025-01-15T10:30:00Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Hour() != 10 || got.Minute() != 30 {
			t.Fatalf("time component lost: %v", got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := parseDateParam("January 15th"); err == nil {
			t.Fatal("expected error")
		}
	})
}
