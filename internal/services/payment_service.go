package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"membroBack/internal/models"
	"membroBack/internal/repositories"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	statisticsCacheKey = "payments:statistics"
	statisticsCacheTTL = 30 * time.Second
)

var validPaymentStatuses = map[string]bool{
	models.PaymentStatusPaid:      true,
	models.PaymentStatusPending:   true,
	models.PaymentStatusOverdue:   true,
	models.PaymentStatusCancelled: true,
}

var validPaymentMethods = map[string]bool{
	models.PaymentMethodPix:          true,
	models.PaymentMethodCreditCard:   true,
	models.PaymentMethodDebitCard:    true,
	models.PaymentMethodCash:         true,
	models.PaymentMethodBankTransfer: true,
}

var validPaymentKinds = map[string]bool{
	models.PaymentKindDues:  true,
	models.PaymentKindFee:   true,
	models.PaymentKindFine:  true,
	models.PaymentKindOther: true,
}

type PaymentService struct {
	PaymentRepo *repositories.PaymentRepository
	MemberRepo  *repositories.MemberRepository
	Cache       *redis.Client
}

// NewReference generates the 8-character uppercase transaction reference
// used when the caller does not supply one.
func NewReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func validateCreatePayment(req models.CreatePaymentRequest) error {
	if req.MemberID == 0 {
		return models.NewValidationError("memberId is required")
	}
	if req.Amount <= 0 {
		return models.NewValidationError("amount must be greater than zero")
	}
	if req.PaymentDate.IsZero() {
		return models.NewValidationError("paymentDate is required")
	}
	if req.DueDate.IsZero() {
		return models.NewValidationError("dueDate is required")
	}
	if req.Method == "" {
		return models.NewValidationError("method is required")
	}
	if !validPaymentMethods[req.Method] {
		return models.NewValidationError("unknown payment method: " + req.Method)
	}
	if req.Status != "" && !validPaymentStatuses[req.Status] {
		return models.NewValidationError("unknown payment status: " + req.Status)
	}
	if req.Kind != "" && !validPaymentKinds[req.Kind] {
		return models.NewValidationError("unknown payment kind: " + req.Kind)
	}
	return nil
}

func validatePaymentPatch(patch models.PaymentPatch) error {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return models.NewValidationError("amount must be greater than zero")
	}
	if patch.Status != nil && *patch.Status != "" && !validPaymentStatuses[*patch.Status] {
		return models.NewValidationError("unknown payment status: " + *patch.Status)
	}
	if patch.Method != nil && *patch.Method != "" && !validPaymentMethods[*patch.Method] {
		return models.NewValidationError("unknown payment method: " + *patch.Method)
	}
	if patch.Kind != nil && *patch.Kind != "" && !validPaymentKinds[*patch.Kind] {
		return models.NewValidationError("unknown payment kind: " + *patch.Kind)
	}
	return nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, req models.CreatePaymentRequest, registeredBy *int) (models.Payment, error) {
	if err := validateCreatePayment(req); err != nil {
		return models.Payment{}, err
	}

	p := models.Payment{
		MemberID:     req.MemberID,
		Amount:       req.Amount,
		PaymentDate:  req.PaymentDate,
		DueDate:      req.DueDate,
		Method:       req.Method,
		Kind:         req.Kind,
		Status:       req.Status,
		Notes:        req.Notes,
		Reference:    req.Reference,
		RefMonth:     req.RefMonth,
		RefYear:      req.RefYear,
		RegisteredBy: registeredBy,
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	if p.Kind == "" {
		p.Kind = models.PaymentKindDues
	}
	if p.Reference == "" {
		p.Reference = NewReference()
	}
	if p.RefMonth == 0 {
		p.RefMonth = int(req.DueDate.Month())
	}
	if p.RefYear == 0 {
		p.RefYear = req.DueDate.Year()
	}

	created, err := s.PaymentRepo.CreatePayment(ctx, p)
	if err != nil {
		return models.Payment{}, err
	}
	s.invalidateStatistics(ctx)
	return created, nil
}

func (s *PaymentService) GetPaymentByID(ctx context.Context, id int) (models.Payment, error) {
	return s.PaymentRepo.GetPaymentByID(ctx, id)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, id int, patch models.PaymentPatch) (models.Payment, error) {
	if err := validatePaymentPatch(patch); err != nil {
		return models.Payment{}, err
	}
	updated, err := s.PaymentRepo.UpdatePayment(ctx, id, patch)
	if err != nil {
		return models.Payment{}, err
	}
	s.invalidateStatistics(ctx)
	return updated, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, id int) error {
	if err := s.PaymentRepo.DeletePayment(ctx, id); err != nil {
		return err
	}
	s.invalidateStatistics(ctx)
	return nil
}

func (s *PaymentService) RegisterPayment(ctx context.Context, id int, req models.RegisterPaymentRequest) (models.Payment, error) {
	if req.Method == "" {
		return models.Payment{}, models.NewValidationError("method is required")
	}
	if !validPaymentMethods[req.Method] {
		return models.Payment{}, models.NewValidationError("unknown payment method: " + req.Method)
	}
	paid, err := s.PaymentRepo.RegisterPayment(ctx, id, req, time.Now())
	if err != nil {
		return models.Payment{}, err
	}
	s.invalidateStatistics(ctx)
	return paid, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	return s.PaymentRepo.ListPayments(ctx, filter)
}

func (s *PaymentService) MemberStatement(ctx context.Context, memberID int) (models.Statement, error) {
	member, err := s.MemberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return models.Statement{}, err
	}
	payments, err := s.PaymentRepo.PaymentsByMember(ctx, memberID)
	if err != nil {
		return models.Statement{}, err
	}
	return BuildStatement(member, payments), nil
}

// BuildStatement computes the per-member rollup from loaded rows. Only rows
// whose status is exactly Paid or exactly Pending contribute to the totals;
// Overdue and Cancelled rows appear in the list but in neither sum.
func BuildStatement(member models.Member, payments []models.Payment) models.Statement {
	var totalPaid, totalPending float64
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusPaid:
			totalPaid += p.Amount
		case models.PaymentStatusPending:
			totalPending += p.Amount
		}
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return models.Statement{
		Member: models.StatementMember{
			ID:          member.ID,
			Name:        member.Name,
			Email:       member.Email,
			CenterName:  member.CenterName,
			MonthlyDues: member.MonthlyDues,
		},
		Summary: models.StatementSummary{
			TotalPaid:    round2(totalPaid),
			TotalPending: round2(totalPending),
			LastPayment:  member.LastPaymentAt,
		},
		Payments: payments,
	}
}

func (s *PaymentService) Statistics(ctx context.Context) (models.PaymentStatistics, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, statisticsCacheKey).Bytes(); err == nil {
			var stats models.PaymentStatistics
			if err := json.Unmarshal(data, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.PaymentRepo.Statistics(ctx)
	if err != nil {
		return models.PaymentStatistics{}, err
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)

	if s.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.Cache.Set(ctx, statisticsCacheKey, data, statisticsCacheTTL)
		}
	}
	return stats, nil
}

// invalidateStatistics drops the cached counters after a ledger mutation.
// Cache failures are ignored; the next read falls through to the database.
func (s *PaymentService) invalidateStatistics(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Del(ctx, statisticsCacheKey)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
