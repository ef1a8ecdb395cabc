package repositories

import (
	"context"
	"database/sql"
	"errors"

	"membroBack/internal/models"
)

type ReportRepository struct {
	DB *sql.DB
}

// InsertReport persists a generated report. Reports are immutable; there is
// deliberately no update method.
func (r *ReportRepository) InsertReport(ctx context.Context, report models.Report) (models.Report, error) {
	query := `
		INSERT INTO reports (name, type, parameters, generated_at, status, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		report.Name, report.Type, string(report.Parameters),
		report.GeneratedAt, report.Status, string(report.Data),
	)
	if err != nil {
		return models.Report{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Report{}, err
	}
	report.ID = int(id)
	return report, nil
}

// ListReports returns report headers without the result payload, newest first.
func (r *ReportRepository) ListReports(ctx context.Context) ([]models.Report, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, type, generated_at, status
		FROM reports
		ORDER BY generated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Type, &rep.GeneratedAt, &rep.Status); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) GetReportByID(ctx context.Context, id int) (models.Report, error) {
	var (
		rep        models.Report
		parameters sql.NullString
		data       sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, type, parameters, generated_at, status, data
		FROM reports
		WHERE id = ?`, id,
	).Scan(&rep.ID, &rep.Name, &rep.Type, &parameters, &rep.GeneratedAt, &rep.Status, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, models.ErrReportNotFound
	}
	if err != nil {
		return models.Report{}, err
	}
	if parameters.Valid {
		rep.Parameters = []byte(parameters.String)
	}
	if data.Valid {
		rep.Data = []byte(data.String)
	}
	return rep, nil
}

// LedgerEntries loads the payment snapshot the aggregator computes over.
func (r *ReportRepository) LedgerEntries(ctx context.Context) ([]models.LedgerEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.member_id, c.name, p.amount, p.payment_date, p.method, p.status
		FROM payments p
		JOIN members m ON p.member_id = m.id
		JOIN centers c ON m.center_id = c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.PaymentID, &e.MemberID, &e.CenterName, &e.Amount, &e.PaymentDate, &e.Method, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MemberSnapshots loads the registry snapshot the aggregator computes over.
func (r *ReportRepository) MemberSnapshots(ctx context.Context) ([]models.MemberSnapshot, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.id, m.name, m.email, m.phone, c.name, c.monthly_dues,
		       m.status, m.registered_at, m.last_payment_at
		FROM members m
		JOIN centers c ON m.center_id = c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.MemberSnapshot{}
	for rows.Next() {
		var (
			m           models.MemberSnapshot
			phone       sql.NullString
			lastPayment sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &phone, &m.CenterName, &m.MonthlyDues, &m.Status, &m.RegisteredAt, &lastPayment); err != nil {
			return nil, err
		}
		m.Phone = phone.String
		if lastPayment.Valid {
			t := lastPayment.Time
			m.LastPaymentAt = &t
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
