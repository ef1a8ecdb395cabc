package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"membroBack/internal/models"
	"membroBack/internal/repositories"
)

// delinquencyCutoffDays is how long a member can go without a paid dues
// entry before the delinquency report lists them.
const delinquencyCutoffDays = 30

type ReportService struct {
	ReportRepo *repositories.ReportRepository
}

// GenerateReport computes the requested aggregation over a fresh snapshot of
// the ledger and member registry, then persists it as an immutable report row.
func (s *ReportService) GenerateReport(ctx context.Context, req models.GenerateReportRequest) (models.Report, error) {
	if req.Name == "" {
		return models.Report{}, models.NewValidationError("name is required")
	}

	now := time.Now()
	var data interface{}

	switch req.Type {
	case models.ReportTypeMembersByCenter:
		members, err := s.ReportRepo.MemberSnapshots(ctx)
		if err != nil {
			return models.Report{}, err
		}
		data = BuildMembersByCenter(members)
	case models.ReportTypePaymentsByPeriod:
		entries, err := s.ReportRepo.LedgerEntries(ctx)
		if err != nil {
			return models.Report{}, err
		}
		start, end := periodRange(req.Parameters, now)
		data = BuildPaymentsByPeriod(entries, start, end)
	case models.ReportTypeDelinquency:
		members, err := s.ReportRepo.MemberSnapshots(ctx)
		if err != nil {
			return models.Report{}, err
		}
		data = BuildDelinquency(members, now)
	case models.ReportTypeMonthlyFinancial:
		entries, err := s.ReportRepo.LedgerEntries(ctx)
		if err != nil {
			return models.Report{}, err
		}
		month, year := monthYearParams(req.Parameters, now)
		data = BuildMonthlyFinancial(entries, month, year)
	default:
		return models.Report{}, models.ErrUnknownReportType
	}

	paramsJSON, err := json.Marshal(req.Parameters)
	if err != nil {
		return models.Report{}, err
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		Name:        req.Name,
		Type:        req.Type,
		Parameters:  paramsJSON,
		GeneratedAt: now,
		Status:      models.ReportStatusGenerated,
		Data:        dataJSON,
	}
	return s.ReportRepo.InsertReport(ctx, report)
}

func (s *ReportService) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.ReportRepo.ListReports(ctx)
}

func (s *ReportService) GetReportByID(ctx context.Context, id int) (models.Report, error) {
	return s.ReportRepo.GetReportByID(ctx, id)
}

// periodRange resolves the payments-by-period window: defaults are the last
// month up to now, overridable via startDate/endDate parameters.
func periodRange(params map[string]interface{}, now time.Time) (time.Time, time.Time) {
	start := now.AddDate(0, -1, 0)
	end := now
	if t, ok := paramTime(params, "startDate"); ok {
		start = t
	}
	if t, ok := paramTime(params, "endDate"); ok {
		end = t
	}
	return start, end
}

// monthYearParams resolves the monthly-financial window, defaulting to the
// current calendar month.
func monthYearParams(params map[string]interface{}, now time.Time) (int, int) {
	month := int(now.Month())
	year := now.Year()
	if v, ok := paramInt(params, "month"); ok && v >= 1 && v <= 12 {
		month = v
	}
	if v, ok := paramInt(params, "year"); ok && v > 0 {
		year = v
	}
	return month, year
}

func paramTime(params map[string]interface{}, key string) (time.Time, bool) {
	raw, ok := params[key]
	if !ok {
		return time.Time{}, false
	}
	str, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func paramInt(params map[string]interface{}, key string) (int, bool) {
	raw, ok := params[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// BuildMembersByCenter groups the registry snapshot by center name.
func BuildMembersByCenter(members []models.MemberSnapshot) models.MembersByCenterReport {
	groups := map[string]*models.MembersByCenterRow{}
	for _, m := range members {
		row, ok := groups[m.CenterName]
		if !ok {
			row = &models.MembersByCenterRow{Center: m.CenterName}
			groups[m.CenterName] = row
		}
		row.TotalMembers++
		switch m.Status {
		case models.MemberStatusActive:
			row.ActiveMembers++
		case models.MemberStatusInactive:
			row.InactiveMembers++
		}
	}

	rows := make([]models.MembersByCenterRow, 0, len(groups))
	total := 0
	for _, row := range groups {
		rows = append(rows, *row)
		total += row.TotalMembers
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Center < rows[j].Center })

	return models.MembersByCenterReport{
		Title: "Members by Center",
		Rows:  rows,
		Total: total,
	}
}

// BuildPaymentsByPeriod groups ledger entries with a payment date inside
// [start, end] by the member's center.
func BuildPaymentsByPeriod(entries []models.LedgerEntry, start, end time.Time) models.PaymentsByPeriodReport {
	groups := map[string]*models.PaymentsByPeriodRow{}
	var totalCount int
	var totalAmount float64

	for _, e := range entries {
		if e.PaymentDate.Before(start) || e.PaymentDate.After(end) {
			continue
		}
		row, ok := groups[e.CenterName]
		if !ok {
			row = &models.PaymentsByPeriodRow{Center: e.CenterName}
			groups[e.CenterName] = row
		}
		row.Count++
		row.Amount = round2(row.Amount + e.Amount)
		switch e.Status {
		case models.PaymentStatusPaid:
			row.PaidCount++
		case models.PaymentStatusPending:
			row.PendingCount++
		}
		totalCount++
		totalAmount += e.Amount
	}

	rows := make([]models.PaymentsByPeriodRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Center < rows[j].Center })

	return models.PaymentsByPeriodReport{
		Title: "Payments by Period",
		Start: start,
		End:   end,
		Rows:  rows,
		Summary: models.PeriodSummary{
			Count:  totalCount,
			Amount: round2(totalAmount),
		},
	}
}

// BuildDelinquency lists active members whose last paid entry is missing or
// older than the cutoff. Days overdue count from the last payment, or from
// registration when the member never paid.
func BuildDelinquency(members []models.MemberSnapshot, now time.Time) models.DelinquencyReport {
	cutoff := now.AddDate(0, 0, -delinquencyCutoffDays)

	rows := []models.DelinquentMember{}
	var duesTotal float64
	for _, m := range members {
		if m.Status != models.MemberStatusActive {
			continue
		}
		if m.LastPaymentAt != nil && !m.LastPaymentAt.Before(cutoff) {
			continue
		}
		since := m.RegisteredAt
		if m.LastPaymentAt != nil {
			since = *m.LastPaymentAt
		}
		rows = append(rows, models.DelinquentMember{
			ID:          m.ID,
			Name:        m.Name,
			Email:       m.Email,
			Phone:       m.Phone,
			Center:      m.CenterName,
			MonthlyDues: m.MonthlyDues,
			LastPayment: m.LastPaymentAt,
			DaysOverdue: int(now.Sub(since).Hours() / 24),
		})
		duesTotal += m.MonthlyDues
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DaysOverdue > rows[j].DaysOverdue })

	return models.DelinquencyReport{
		Title: "Delinquency",
		Rows:  rows,
		Summary: models.DelinquencySummary{
			Count:       len(rows),
			MonthlyDues: round2(duesTotal),
		},
	}
}

// BuildMonthlyFinancial sums Paid entries whose payment date falls inside
// the given calendar month and breaks revenue down by center and by method.
func BuildMonthlyFinancial(entries []models.LedgerEntry, month, year int) models.MonthlyFinancialReport {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	byCenter := map[string]*models.RevenueRow{}
	byMethod := map[string]*models.RevenueRow{}
	var revenue float64
	var count int

	for _, e := range entries {
		if e.Status != models.PaymentStatusPaid {
			continue
		}
		if e.PaymentDate.Before(start) || !e.PaymentDate.Before(end) {
			continue
		}
		revenue += e.Amount
		count++

		center, ok := byCenter[e.CenterName]
		if !ok {
			center = &models.RevenueRow{Label: e.CenterName}
			byCenter[e.CenterName] = center
		}
		center.Revenue = round2(center.Revenue + e.Amount)
		center.Count++

		method, ok := byMethod[e.Method]
		if !ok {
			method = &models.RevenueRow{Label: e.Method}
			byMethod[e.Method] = method
		}
		method.Revenue = round2(method.Revenue + e.Amount)
		method.Count++
	}

	return models.MonthlyFinancialReport{
		Title:    "Monthly Financial",
		Month:    month,
		Year:     year,
		Revenue:  round2(revenue),
		Count:    count,
		ByCenter: sortedRevenueRows(byCenter),
		ByMethod: sortedRevenueRows(byMethod),
	}
}

func sortedRevenueRows(groups map[string]*models.RevenueRow) []models.RevenueRow {
	rows := make([]models.RevenueRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}
