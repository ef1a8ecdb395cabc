package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"membroBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

// paymentViewQuery joins member and center names at query time; the
// payments table itself stores only the member reference.
const paymentViewQuery = `
SELECT p.id, p.member_id, m.name, c.name, p.amount, p.payment_date, p.due_date,
       p.method, p.kind, p.status, p.notes, p.reference, p.paid_by,
       p.ref_month, p.ref_year, p.registered_by, p.created_at, p.updated_at
FROM payments p
JOIN members m ON p.member_id = m.id
JOIN centers c ON m.center_id = c.id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPaymentView(row rowScanner) (models.Payment, error) {
	var (
		p            models.Payment
		notes        sql.NullString
		paidBy       sql.NullString
		registeredBy sql.NullInt64
		updatedAt    sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.MemberID, &p.MemberName, &p.CenterName, &p.Amount,
		&p.PaymentDate, &p.DueDate, &p.Method, &p.Kind, &p.Status,
		&notes, &p.Reference, &paidBy, &p.RefMonth, &p.RefYear,
		&registeredBy, &p.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Payment{}, err
	}
	p.Notes = notes.String
	p.PaidBy = paidBy.String
	if registeredBy.Valid {
		v := int(registeredBy.Int64)
		p.RegisteredBy = &v
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return p, nil
}

// refreshMemberLastPayment recomputes the member's last payment date as the
// maximum payment date over their Paid rows. Running it inside the mutating
// transaction keeps the derived field consistent with the ledger.
func refreshMemberLastPayment(ctx context.Context, tx *sql.Tx, memberID int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE members
		SET last_payment_at = (
			SELECT MAX(payment_date) FROM payments
			WHERE member_id = ? AND status = ?
		)
		WHERE id = ?`,
		memberID, models.PaymentStatusPaid, memberID,
	)
	return err
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Payment{}, err
	}
	defer tx.Rollback()

	var memberID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM members WHERE id = ?`, p.MemberID).Scan(&memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, models.ErrMemberNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}

	query := `
		INSERT INTO payments
			(member_id, amount, payment_date, due_date, method, kind, status,
			 notes, reference, paid_by, ref_month, ref_year, registered_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := tx.ExecContext(ctx, query,
		p.MemberID, p.Amount, p.PaymentDate, p.DueDate, p.Method, p.Kind,
		p.Status, p.Notes, p.Reference, p.PaidBy, p.RefMonth, p.RefYear,
		p.RegisteredBy,
	)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = int(id)

	if p.Status == models.PaymentStatusPaid {
		if err := refreshMemberLastPayment(ctx, tx, p.MemberID); err != nil {
			return models.Payment{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id int) (models.Payment, error) {
	row := r.DB.QueryRowContext(ctx, paymentViewQuery+` WHERE p.id = ?`, id)
	p, err := scanPaymentView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// getPaymentForUpdate locks the row and scans the stored columns only,
// without the member/center join.
func getPaymentForUpdate(ctx context.Context, tx *sql.Tx, id int) (models.Payment, error) {
	var (
		p            models.Payment
		notes        sql.NullString
		paidBy       sql.NullString
		registeredBy sql.NullInt64
	)
	err := tx.QueryRowContext(ctx, `
		SELECT id, member_id, amount, payment_date, due_date, method, kind,
		       status, notes, reference, paid_by, ref_month, ref_year,
		       registered_by, created_at
		FROM payments
		WHERE id = ?
		FOR UPDATE`, id,
	).Scan(
		&p.ID, &p.MemberID, &p.Amount, &p.PaymentDate, &p.DueDate,
		&p.Method, &p.Kind, &p.Status, &notes, &p.Reference, &paidBy,
		&p.RefMonth, &p.RefYear, &registeredBy, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}
	p.Notes = notes.String
	p.PaidBy = paidBy.String
	if registeredBy.Valid {
		v := int(registeredBy.Int64)
		p.RegisteredBy = &v
	}
	return p, nil
}

func writePayment(ctx context.Context, tx *sql.Tx, p models.Payment) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE payments
		SET amount = ?, payment_date = ?, due_date = ?, method = ?, kind = ?,
		    status = ?, notes = ?, paid_by = ?, ref_month = ?, ref_year = ?,
		    updated_at = NOW()
		WHERE id = ?`,
		p.Amount, p.PaymentDate, p.DueDate, p.Method, p.Kind, p.Status,
		p.Notes, p.PaidBy, p.RefMonth, p.RefYear, p.ID,
	)
	return err
}

// UpdatePayment applies a partial patch to the payment row. When the patch
// transitions the row into Paid, the member's last payment date is refreshed
// in the same transaction. Transitioning away from Paid intentionally does
// not clear the derived field.
func (r *PaymentRepository) UpdatePayment(ctx context.Context, id int, patch models.PaymentPatch) (models.Payment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Payment{}, err
	}
	defer tx.Rollback()

	current, err := getPaymentForUpdate(ctx, tx, id)
	if err != nil {
		return models.Payment{}, err
	}

	updated := patch.Apply(current)
	if err := writePayment(ctx, tx, updated); err != nil {
		return models.Payment{}, err
	}

	// Refresh whenever the row ends up Paid: this covers the transition into
	// Paid and date edits on an already settled row. Leaving Paid does not
	// clear the member's marker.
	if updated.Status == models.PaymentStatusPaid {
		if err := refreshMemberLastPayment(ctx, tx, updated.MemberID); err != nil {
			return models.Payment{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, err
	}
	return updated, nil
}

// RegisterPayment settles a pending obligation: status becomes Paid and the
// payment date is stamped with the supplied time.
func (r *PaymentRepository) RegisterPayment(ctx context.Context, id int, req models.RegisterPaymentRequest, now time.Time) (models.Payment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Payment{}, err
	}
	defer tx.Rollback()

	p, err := getPaymentForUpdate(ctx, tx, id)
	if err != nil {
		return models.Payment{}, err
	}

	p.Status = models.PaymentStatusPaid
	p.PaymentDate = now
	p.Method = req.Method
	if req.PaidBy != "" {
		p.PaidBy = req.PaidBy
	}
	if req.Notes != "" {
		p.Notes = req.Notes
	}

	if err := writePayment(ctx, tx, p); err != nil {
		return models.Payment{}, err
	}
	if err := refreshMemberLastPayment(ctx, tx, p.MemberID); err != nil {
		return models.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) DeletePayment(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var memberID int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT member_id, status FROM payments WHERE id = ? FOR UPDATE`, id,
	).Scan(&memberID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id); err != nil {
		return err
	}
	if status == models.PaymentStatusPaid {
		if err := refreshMemberLastPayment(ctx, tx, memberID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PaymentRepository) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	query := paymentViewQuery + ` WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		query += ` AND (m.name LIKE ? OR m.email LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		query += ` AND p.status = ?`
		args = append(args, filter.Status)
	}
	if filter.MemberID != 0 {
		query += ` AND p.member_id = ?`
		args = append(args, filter.MemberID)
	}
	if filter.StartDate != nil {
		query += ` AND p.payment_date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND p.payment_date <= ?`
		args = append(args, *filter.EndDate)
	}
	query += ` ORDER BY p.payment_date DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPaymentView(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) PaymentsByMember(ctx context.Context, memberID int) ([]models.Payment, error) {
	query := paymentViewQuery + `
		WHERE p.member_id = ?
		ORDER BY p.payment_date DESC, p.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPaymentView(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) Statistics(ctx context.Context) (models.PaymentStatistics, error) {
	var stats models.PaymentStatistics
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = ? THEN amount ELSE 0 END), 0)
		FROM payments`,
		models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusPaid,
	).Scan(&stats.TotalPayments, &stats.PaidCount, &stats.PendingCount, &stats.TotalRevenue)
	if err != nil {
		return models.PaymentStatistics{}, err
	}
	return stats, nil
}
