package models

import (
	"testing"
	"time"
)

func TestPaymentPatchApply(t *testing.T) {
	base := Payment{
		ID:          7,
		MemberID:    3,
		Amount:      150,
		PaymentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Method:      PaymentMethodPix,
		Kind:        PaymentKindDues,
		Status:      PaymentStatusPending,
		Notes:       "january dues",
		Reference:   "AB12CD34",
	}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		patch := PaymentPatch{}
		if !patch.IsEmpty() {
			t.Fatalf("expected empty patch")
		}
		if got := patch.Apply(base); got != base {
			t.Fatalf("expected %+v, got %+v", base, got)
		}
	})

	t.Run("applies supplied fields only", func(t *testing.T) {
		amount := 200.0
		status := PaymentStatusPaid
		notes := ""
		patch := PaymentPatch{Amount: &amount, Status: &status, Notes: &notes}
		if patch.IsEmpty() {
			t.Fatalf("expected non-empty patch")
		}

		got := patch.Apply(base)
		if got.Amount != 200 {
			t.Errorf("amount: expected 200, got %v", got.Amount)
		}
		if got.Status != PaymentStatusPaid {
			t.Errorf("status: expected %s, got %s", PaymentStatusPaid, got.Status)
		}
		if got.Notes != "" {
			t.Errorf("notes: expected cleared, got %q", got.Notes)
		}
		if got.Method != base.Method || got.DueDate != base.DueDate {
			t.Errorf("untouched fields changed: %+v", got)
		}
	})

	t.Run("empty string status keeps stored value", func(t *testing.T) {
		status := ""
		patch := PaymentPatch{Status: &status}
		if got := patch.Apply(base); got.Status != PaymentStatusPending {
			t.Fatalf("expected %s, got %s", PaymentStatusPending, got.Status)
		}
	})
}
