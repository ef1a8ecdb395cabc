package models

import (
	"time"
)

// Payment lifecycle statuses.
const (
	PaymentStatusPaid      = "Paid"
	PaymentStatusPending   = "Pending"
	PaymentStatusOverdue   = "Overdue"
	PaymentStatusCancelled = "Cancelled"
)

// Payment methods accepted at the front desk.
const (
	PaymentMethodPix          = "PIX"
	PaymentMethodCreditCard   = "CreditCard"
	PaymentMethodDebitCard    = "DebitCard"
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "BankTransfer"
)

// Obligation kinds carried by a ledger entry.
const (
	PaymentKindDues  = "Dues"
	PaymentKindFee   = "Fee"
	PaymentKindFine  = "Fine"
	PaymentKindOther = "Other"
)

type Payment struct {
	ID           int        `json:"id"`
	MemberID     int        `json:"memberId"`
	MemberName   string     `json:"memberName,omitempty"`
	CenterName   string     `json:"centerName,omitempty"`
	Amount       float64    `json:"amount"`
	PaymentDate  time.Time  `json:"paymentDate"`
	DueDate      time.Time  `json:"dueDate"`
	Method       string     `json:"method"`
	Kind         string     `json:"kind"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	Reference    string     `json:"reference"`
	PaidBy       string     `json:"paidBy,omitempty"`
	RefMonth     int        `json:"refMonth,omitempty"`
	RefYear      int        `json:"refYear,omitempty"`
	RegisteredBy *int       `json:"registeredBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type CreatePaymentRequest struct {
	MemberID    int        `json:"memberId"`
	Amount      float64    `json:"amount"`
	PaymentDate time.Time  `json:"paymentDate"`
	DueDate     time.Time  `json:"dueDate"`
	Method      string     `json:"method"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	Reference   string     `json:"reference"`
	RefMonth    int        `json:"refMonth"`
	RefYear     int        `json:"refYear"`
}

// PaymentPatch carries a partial update. Nil fields keep the stored value.
type PaymentPatch struct {
	Amount      *float64   `json:"amount"`
	PaymentDate *time.Time `json:"paymentDate"`
	DueDate     *time.Time `json:"dueDate"`
	Method      *string    `json:"method"`
	Kind        *string    `json:"kind"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
	PaidBy      *string    `json:"paidBy"`
	RefMonth    *int       `json:"refMonth"`
	RefYear     *int       `json:"refYear"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PaymentPatch) IsEmpty() bool {
	return p.Amount == nil && p.PaymentDate == nil && p.DueDate == nil &&
		p.Method == nil && p.Kind == nil && p.Status == nil &&
		p.Notes == nil && p.PaidBy == nil && p.RefMonth == nil && p.RefYear == nil
}

// Apply copies the supplied fields of the patch onto the payment.
// Omitted fields retain their prior value.
func (p PaymentPatch) Apply(payment Payment) Payment {
	if p.Amount != nil {
		payment.Amount = *p.Amount
	}
	if p.PaymentDate != nil {
		payment.PaymentDate = *p.PaymentDate
	}
	if p.DueDate != nil {
		payment.DueDate = *p.DueDate
	}
	if p.Method != nil && *p.Method != "" {
		payment.Method = *p.Method
	}
	if p.Kind != nil && *p.Kind != "" {
		payment.Kind = *p.Kind
	}
	if p.Status != nil && *p.Status != "" {
		payment.Status = *p.Status
	}
	if p.Notes != nil {
		payment.Notes = *p.Notes
	}
	if p.PaidBy != nil {
		payment.PaidBy = *p.PaidBy
	}
	if p.RefMonth != nil {
		payment.RefMonth = *p.RefMonth
	}
	if p.RefYear != nil {
		payment.RefYear = *p.RefYear
	}
	return payment
}

type RegisterPaymentRequest struct {
	Method string `json:"method"`
	PaidBy string `json:"paidBy"`
	Notes  string `json:"notes"`
}

// PaymentFilter narrows the ledger list view.
type PaymentFilter struct {
	Search    string
	Status    string
	MemberID  int
	StartDate *time.Time
	EndDate   *time.Time
}

type PaymentStatistics struct {
	TotalPayments int     `json:"totalPayments"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// Statement is the per-member financial rollup.
type Statement struct {
	Member   StatementMember  `json:"member"`
	Summary  StatementSummary `json:"summary"`
	Payments []Payment        `json:"payments"`
}

type StatementMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	CenterName  string  `json:"centerName"`
	MonthlyDues float64 `json:"monthlyDues"`
}

type StatementSummary struct {
	TotalPaid    float64    `json:"totalPaid"`
	TotalPending float64    `json:"totalPending"`
	LastPayment  *time.Time `json:"lastPayment"`
}
