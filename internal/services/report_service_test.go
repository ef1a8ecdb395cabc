package services

import (
	"testing"
	"time"

	"membroBack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMembersByCenter(t *testing.T) {
	members := []models.MemberSnapshot{
		{ID: 1, CenterName: "Centro Sul", Status: models.MemberStatusActive},
		{ID: 2, CenterName: "Centro Norte", Status: models.MemberStatusActive},
		{ID: 3, CenterName: "Centro Norte", Status: models.MemberStatusInactive},
		{ID: 4, CenterName: "Centro Norte", Status: models.MemberStatusActive},
	}

	report := BuildMembersByCenter(members)

	if report.Total != 4 {
		t.Fatalf("total: expected 4, got %d", report.Total)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	// Rows are sorted by center name.
	norte := report.Rows[0]
	if norte.Center != "Centro Norte" || norte.TotalMembers != 3 || norte.ActiveMembers != 2 || norte.InactiveMembers != 1 {
		t.Errorf("unexpected first row: %+v", norte)
	}
	sul := report.Rows[1]
	if sul.Center != "Centro Sul" || sul.TotalMembers != 1 || sul.ActiveMembers != 1 {
		t.Errorf("unexpected second row: %+v", sul)
	}
}

func TestBuildPaymentsByPeriod(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 31)
	entries := []models.LedgerEntry{
		{PaymentID: 1, CenterName: "Centro Norte", Amount: 150, PaymentDate: date(2025, time.January, 5), Status: models.PaymentStatusPaid},
		{PaymentID: 2, CenterName: "Centro Norte", Amount: 75.50, PaymentDate: date(2025, time.January, 20), Status: models.PaymentStatusPending},
		{PaymentID: 3, CenterName: "Centro Sul", Amount: 150, PaymentDate: date(2025, time.January, 31), Status: models.PaymentStatusPaid},
		{PaymentID: 4, CenterName: "Centro Sul", Amount: 150, PaymentDate: date(2025, time.February, 1), Status: models.PaymentStatusPaid},
		{PaymentID: 5, CenterName: "Centro Sul", Amount: 150, PaymentDate: date(2024, time.December, 31), Status: models.PaymentStatusPaid},
	}

	report := BuildPaymentsByPeriod(entries, start, end)

	if report.Summary.Count != 3 {
		t.Fatalf("summary count: expected 3, got %d", report.Summary.Count)
	}
	if report.Summary.Amount != 375.50 {
		t.Fatalf("summary amount: expected 375.50, got %v", report.Summary.Amount)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	norte := report.Rows[0]
	if norte.Count != 2 || norte.Amount != 225.50 || norte.PaidCount != 1 || norte.PendingCount != 1 {
		t.Errorf("unexpected Centro Norte row: %+v", norte)
	}
	sul := report.Rows[1]
	if sul.Count != 1 || sul.Amount != 150 {
		t.Errorf("unexpected Centro Sul row: %+v", sul)
	}
}

func TestBuildDelinquency(t *testing.T) {
	now := date(2025, time.March, 1)
	old := date(2025, time.January, 20) // 40 days before now
	recent := date(2025, time.February, 19)

	members := []models.MemberSnapshot{
		{ID: 1, Name: "Never Paid", Status: models.MemberStatusActive, MonthlyDues: 150, RegisteredAt: old},
		{ID: 2, Name: "Paid Long Ago", Status: models.MemberStatusActive, MonthlyDues: 100, RegisteredAt: date(2024, time.June, 1), LastPaymentAt: &old},
		{ID: 3, Name: "Up To Date", Status: models.MemberStatusActive, MonthlyDues: 150, RegisteredAt: date(2024, time.June, 1), LastPaymentAt: &recent},
		{ID: 4, Name: "Inactive", Status: models.MemberStatusInactive, MonthlyDues: 150, RegisteredAt: date(2024, time.June, 1), LastPaymentAt: &old},
	}

	report := BuildDelinquency(members, now)

	if report.Summary.Count != 2 {
		t.Fatalf("expected 2 delinquent members, got %d", report.Summary.Count)
	}
	if report.Summary.MonthlyDues != 250 {
		t.Fatalf("dues sum: expected 250, got %v", report.Summary.MonthlyDues)
	}
	for _, row := range report.Rows {
		if row.DaysOverdue != 40 {
			t.Errorf("member %d: expected 40 days overdue, got %d", row.ID, row.DaysOverdue)
		}
	}
	if report.Rows[0].ID == 3 || report.Rows[1].ID == 3 {
		t.Errorf("member with a recent payment should not be listed")
	}
}

func TestBuildDelinquencySortsByDaysOverdue(t *testing.T) {
	now := date(2025, time.March, 1)
	fortyDays := date(2025, time.January, 20)
	sixtyDays := date(2024, time.December, 31)

	members := []models.MemberSnapshot{
		{ID: 1, Status: models.MemberStatusActive, RegisteredAt: date(2024, time.June, 1), LastPaymentAt: &fortyDays},
		{ID: 2, Status: models.MemberStatusActive, RegisteredAt: date(2024, time.June, 1), LastPaymentAt: &sixtyDays},
	}

	report := BuildDelinquency(members, now)
	if len(report.Rows) != 2 || report.Rows[0].ID != 2 {
		t.Fatalf("expected most overdue member first, got %+v", report.Rows)
	}
}

func TestBuildMonthlyFinancial(t *testing.T) {
	entries := []models.LedgerEntry{
		{CenterName: "Centro Norte", Method: models.PaymentMethodPix, Amount: 150, PaymentDate: date(2025, time.January, 1), Status: models.PaymentStatusPaid},
		{CenterName: "Centro Norte", Method: models.PaymentMethodCash, Amount: 75.50, PaymentDate: date(2025, time.January, 31), Status: models.PaymentStatusPaid},
		{CenterName: "Centro Sul", Method: models.PaymentMethodPix, Amount: 150, PaymentDate: date(2025, time.January, 15), Status: models.PaymentStatusPending},
		{CenterName: "Centro Sul", Method: models.PaymentMethodPix, Amount: 150, PaymentDate: date(2025, time.February, 1), Status: models.PaymentStatusPaid},
	}

	report := BuildMonthlyFinancial(entries, 1, 2025)

	if report.Month != 1 || report.Year != 2025 {
		t.Fatalf("unexpected period: %d/%d", report.Month, report.Year)
	}
	if report.Count != 2 {
		t.Fatalf("count: expected 2 paid entries in January, got %d", report.Count)
	}
	if report.Revenue != 225.50 {
		t.Fatalf("revenue: expected 225.50, got %v", report.Revenue)
	}
	if len(report.ByCenter) != 1 || report.ByCenter[0].Label != "Centro Norte" {
		t.Errorf("unexpected center breakdown: %+v", report.ByCenter)
	}
	if len(report.ByMethod) != 2 {
		t.Errorf("expected 2 methods, got %+v", report.ByMethod)
	}
}

func TestPeriodRangeDefaults(t *testing.T) {
	now := date(2025, time.March, 15)

	t.Run("defaults to the last month", func(t *testing.T) {
		start, end := periodRange(nil, now)
		if !start.Equal(now.AddDate(0, -1, 0)) {
			t.Errorf("start: expected %v, got %v", now.AddDate(0, -1, 0), start)
		}
		if !end.Equal(now) {
			t.Errorf("end: expected %v, got %v", now, end)
		}
	})

	t.Run("honors explicit bounds", func(t *testing.T) {
		params := map[string]interface{}{
			"startDate": "2025-01-01",
			"endDate":   "2025-01-31",
		}
		start, end := periodRange(params, now)
		if !start.Equal(date(2025, time.January, 1)) || !end.Equal(date(2025, time.January, 31)) {
			t.Errorf("unexpected range: %v .. %v", start, end)
		}
	})
}

func TestMonthYearParams(t *testing.T) {
	now := date(2025, time.March, 15)

	tests := []struct {
		name      string
		params    map[string]interface{}
		wantMonth int
		wantYear  int
	}{
		{"defaults to current month", nil, 3, 2025},
		{"json numbers decode as float64", map[string]interface{}{"month": float64(1), "year": float64(2024)}, 1, 2024},
		{"string values", map[string]interface{}{"month": "12", "year": "2023"}, 12, 2023},
		{"out of range month ignored", map[string]interface{}{"month": float64(13)}, 3, 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year := monthYearParams(tt.params, now)
			if month != tt.wantMonth || year != tt.wantYear {
				t.Fatalf("expected %d/%d, got %d/%d", tt.wantMonth, tt.wantYear, month, year)
			}
		})
	}
}
