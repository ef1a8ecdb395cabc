package models

import (
	"encoding/json"
	"time"
)

// Report types supported by the aggregator.
const (
	ReportTypeMembersByCenter  = "MembersByCenter"
	ReportTypePaymentsByPeriod = "PaymentsByPeriod"
	ReportTypeDelinquency      = "Delinquency"
	ReportTypeMonthlyFinancial = "MonthlyFinancial"
)

const (
	ReportStatusGenerated = "Generated"
	ReportStatusFailed    = "Failed"
)

// Report is an immutable snapshot of a generated aggregation. Regenerating
// inserts a new row, existing rows are never updated.
type Report struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Status      string          `json:"status"`
	Data        json.RawMessage `json:"data,omitempty"`
}

type GenerateReportRequest struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Parameters map[string]interface{} `json:"parameters"`
}

// LedgerEntry is the read-side snapshot row reports aggregate over:
// a payment joined with its member's center.
type LedgerEntry struct {
	PaymentID   int
	MemberID    int
	CenterName  string
	Amount      float64
	PaymentDate time.Time
	Method      string
	Status      string
}

// MemberSnapshot is the registry row reports aggregate over.
type MemberSnapshot struct {
	ID            int
	Name          string
	Email         string
	Phone         string
	CenterName    string
	MonthlyDues   float64
	Status        string
	RegisteredAt  time.Time
	LastPaymentAt *time.Time
}

// Report result payloads. They are serialized into the report row and
// echoed back on generation.

type MembersByCenterRow struct {
	Center          string `json:"center"`
	TotalMembers    int    `json:"totalMembers"`
	ActiveMembers   int    `json:"activeMembers"`
	InactiveMembers int    `json:"inactiveMembers"`
}

type MembersByCenterReport struct {
	Title string               `json:"title"`
	Rows  []MembersByCenterRow `json:"rows"`
	Total int                  `json:"total"`
}

type PaymentsByPeriodRow struct {
	Center       string  `json:"center"`
	Count        int     `json:"count"`
	Amount       float64 `json:"amount"`
	PaidCount    int     `json:"paidCount"`
	PendingCount int     `json:"pendingCount"`
}

type PaymentsByPeriodReport struct {
	Title   string                `json:"title"`
	Start   time.Time             `json:"startDate"`
	End     time.Time             `json:"endDate"`
	Rows    []PaymentsByPeriodRow `json:"rows"`
	Summary PeriodSummary         `json:"summary"`
}

type PeriodSummary struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type DelinquentMember struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Center      string     `json:"center"`
	MonthlyDues float64    `json:"monthlyDues"`
	LastPayment *time.Time `json:"lastPayment"`
	DaysOverdue int        `json:"daysOverdue"`
}

type DelinquencyReport struct {
	Title   string             `json:"title"`
	Rows    []DelinquentMember `json:"rows"`
	Summary DelinquencySummary `json:"summary"`
}

type DelinquencySummary struct {
	Count       int     `json:"count"`
	MonthlyDues float64 `json:"monthlyDues"`
}

type RevenueRow struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type MonthlyFinancialReport struct {
	Title    string       `json:"title"`
	Month    int          `json:"month"`
	Year     int          `json:"year"`
	Revenue  float64      `json:"revenue"`
	Count    int          `json:"count"`
	ByCenter []RevenueRow `json:"byCenter"`
	ByMethod []RevenueRow `json:"byMethod"`
}
