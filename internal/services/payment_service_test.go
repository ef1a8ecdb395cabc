package services

import (
	"testing"
	"time"

	"membroBack/internal/models"
)

func TestNewReference(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		ref := NewReference()
		if len(ref) != 8 {
			t.Fatalf("expected 8 characters, got %q", ref)
		}
		for _, c := range ref {
			if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
				t.Fatalf("unexpected character %q in %q", c, ref)
			}
		}
		seen[ref] = true
	}
	if len(seen) < 2 {
		t.Fatalf("references do not vary: %v", seen)
	}
}

func TestValidateCreatePayment(t *testing.T) {
	valid := models.CreatePaymentRequest{
		MemberID:    1,
		Amount:      150,
		PaymentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Method:      models.PaymentMethodPix,
	}

	tests := []struct {
		name    string
		mutate  func(*models.CreatePaymentRequest)
		wantErr bool
	}{
		{"valid", func(r *models.CreatePaymentRequest) {}, false},
		{"missing member", func(r *models.CreatePaymentRequest) { r.MemberID = 0 }, true},
		{"zero amount", func(r *models.CreatePaymentRequest) { r.Amount = 0 }, true},
		{"negative amount", func(r *models.CreatePaymentRequest) { r.Amount = -10 }, true},
		{"missing method", func(r *models.CreatePaymentRequest) { r.Method = "" }, true},
		{"unknown method", func(r *models.CreatePaymentRequest) { r.Method = "Barter" }, true},
		{"unknown status", func(r *models.CreatePaymentRequest) { r.Status = "Maybe" }, true},
		{"valid status", func(r *models.CreatePaymentRequest) { r.Status = models.PaymentStatusPaid }, false},
		{"unknown kind", func(r *models.CreatePaymentRequest) { r.Kind = "Gift" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := validateCreatePayment(req)
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr && !models.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestBuildStatement(t *testing.T) {
	member := models.Member{
		ID:          5,
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		CenterName:  "Centro Norte",
		MonthlyDues: 150,
	}

	t.Run("no payments", func(t *testing.T) {
		stmt := BuildStatement(member, nil)
		if stmt.Summary.TotalPaid != 0 || stmt.Summary.TotalPending != 0 {
			t.Fatalf("expected zero totals, got %+v", stmt.Summary)
		}
		if stmt.Payments == nil || len(stmt.Payments) != 0 {
			t.Fatalf("expected empty payment list, got %v", stmt.Payments)
		}
		if stmt.Member.Name != "Maria Silva" || stmt.Member.CenterName != "Centro Norte" {
			t.Fatalf("member block wrong: %+v", stmt.Member)
		}
	})

	t.Run("totals partition by status", func(t *testing.T) {
		payments := []models.Payment{
			{Amount: 150, Status: models.PaymentStatusPaid},
			{Amount: 150, Status: models.PaymentStatusPaid},
			{Amount: 75.50, Status: models.PaymentStatusPending},
			{Amount: 30, Status: models.PaymentStatusOverdue},
			{Amount: 99, Status: models.PaymentStatusCancelled},
		}
		stmt := BuildStatement(member, payments)
		if stmt.Summary.TotalPaid != 300 {
			t.Errorf("totalPaid: expected 300, got %v", stmt.Summary.TotalPaid)
		}
		if stmt.Summary.TotalPending != 75.50 {
			t.Errorf("totalPending: expected 75.50, got %v", stmt.Summary.TotalPending)
		}
		if len(stmt.Payments) != 5 {
			t.Errorf("expected all 5 rows listed, got %d", len(stmt.Payments))
		}
	})

	t.Run("last payment comes from the member row", func(t *testing.T) {
		last := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		m := member
		m.LastPaymentAt = &last
		stmt := BuildStatement(m, nil)
		if stmt.Summary.LastPayment == nil || !stmt.Summary.LastPayment.Equal(last) {
			t.Fatalf("expected last payment %v, got %v", last, stmt.Summary.LastPayment)
		}
	})
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.0},
		{0.1 + 0.2, 0.3},
		{1.239, 1.24},
		{150, 150},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
