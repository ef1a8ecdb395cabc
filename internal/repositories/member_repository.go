package repositories

import (
	"context"
	"database/sql"
	"errors"

	"membroBack/internal/models"
)

type MemberRepository struct {
	DB *sql.DB
}

const memberViewQuery = `
SELECT m.id, m.name, m.email, m.phone, m.address, m.birth_date, m.external_id,
       m.center_id, c.name, c.monthly_dues, m.status, m.registered_at,
       m.last_payment_at, m.emergency_name, m.emergency_phone,
       m.emergency_relation, m.notes, m.registered_by
FROM members m
JOIN centers c ON m.center_id = c.id
`

func scanMemberView(row rowScanner) (models.Member, error) {
	var (
		m             models.Member
		phone         sql.NullString
		birthDate     sql.NullTime
		externalID    sql.NullString
		lastPayment   sql.NullTime
		emName        sql.NullString
		emPhone       sql.NullString
		emRelation    sql.NullString
		notes         sql.NullString
		registeredBy  sql.NullInt64
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &phone, &m.Address, &birthDate, &externalID,
		&m.CenterID, &m.CenterName, &m.MonthlyDues, &m.Status, &m.RegisteredAt,
		&lastPayment, &emName, &emPhone, &emRelation, &notes, &registeredBy,
	)
	if err != nil {
		return models.Member{}, err
	}
	m.Phone = phone.String
	m.Notes = notes.String
	if birthDate.Valid {
		t := birthDate.Time
		m.BirthDate = &t
	}
	if externalID.Valid {
		v := externalID.String
		m.ExternalID = &v
	}
	if lastPayment.Valid {
		t := lastPayment.Time
		m.LastPaymentAt = &t
	}
	if emName.Valid || emPhone.Valid || emRelation.Valid {
		m.EmergencyContact = &models.EmergencyContact{
			Name:     emName.String,
			Phone:    emPhone.String,
			Relation: emRelation.String,
		}
	}
	if registeredBy.Valid {
		v := int(registeredBy.Int64)
		m.RegisteredBy = &v
	}
	return m, nil
}

func (r *MemberRepository) Exists(ctx context.Context, id int) (bool, error) {
	var found int
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM members WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MemberRepository) GetMemberByID(ctx context.Context, id int) (models.Member, error) {
	row := r.DB.QueryRowContext(ctx, memberViewQuery+` WHERE m.id = ?`, id)
	m, err := scanMemberView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, models.ErrMemberNotFound
	}
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

func (r *MemberRepository) CreateMember(ctx context.Context, m models.Member) (models.Member, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Member{}, err
	}
	defer tx.Rollback()

	var centerID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM centers WHERE id = ?`, m.CenterID).Scan(&centerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, models.ErrCenterNotFound
	}
	if err != nil {
		return models.Member{}, err
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE email = ?`, m.Email).Scan(&count); err != nil {
		return models.Member{}, err
	}
	if count > 0 {
		return models.Member{}, models.ErrDuplicateEmail
	}

	var emName, emPhone, emRelation interface{}
	if m.EmergencyContact != nil {
		emName = m.EmergencyContact.Name
		emPhone = m.EmergencyContact.Phone
		emRelation = m.EmergencyContact.Relation
	}

	query := `
		INSERT INTO members
			(name, email, phone, address, birth_date, external_id, center_id,
			 status, registered_at, emergency_name, emergency_phone,
			 emergency_relation, notes, registered_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), ?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, query,
		m.Name, m.Email, m.Phone, m.Address, m.BirthDate, m.ExternalID,
		m.CenterID, m.Status, emName, emPhone, emRelation, m.Notes,
		m.RegisteredBy,
	)
	if err != nil {
		return models.Member{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Member{}, err
	}
	m.ID = int(id)

	if err := tx.Commit(); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// UpdateMember applies a partial patch. Center and email changes are
// validated against the same rules as creation.
func (r *MemberRepository) UpdateMember(ctx context.Context, id int, patch models.MemberPatch) (models.Member, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Member{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, memberViewQuery+` WHERE m.id = ? FOR UPDATE`, id)
	m, err := scanMemberView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, models.ErrMemberNotFound
	}
	if err != nil {
		return models.Member{}, err
	}

	if patch.CenterID != nil && *patch.CenterID != m.CenterID {
		var centerID int
		err = tx.QueryRowContext(ctx, `SELECT id FROM centers WHERE id = ?`, *patch.CenterID).Scan(&centerID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Member{}, models.ErrCenterNotFound
		}
		if err != nil {
			return models.Member{}, err
		}
		m.CenterID = *patch.CenterID
	}
	if patch.Email != nil && *patch.Email != "" && *patch.Email != m.Email {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE email = ? AND id != ?`, *patch.Email, id).Scan(&count); err != nil {
			return models.Member{}, err
		}
		if count > 0 {
			return models.Member{}, models.ErrDuplicateEmail
		}
		m.Email = *patch.Email
	}
	if patch.Name != nil && *patch.Name != "" {
		m.Name = *patch.Name
	}
	if patch.Phone != nil {
		m.Phone = *patch.Phone
	}
	if patch.Address != nil && *patch.Address != "" {
		m.Address = *patch.Address
	}
	if patch.BirthDate != nil {
		m.BirthDate = patch.BirthDate
	}
	if patch.ExternalID != nil {
		m.ExternalID = patch.ExternalID
	}
	if patch.Status != nil && *patch.Status != "" {
		m.Status = *patch.Status
	}
	if patch.EmergencyContact != nil {
		m.EmergencyContact = patch.EmergencyContact
	}
	if patch.Notes != nil {
		m.Notes = *patch.Notes
	}

	var emName, emPhone, emRelation interface{}
	if m.EmergencyContact != nil {
		emName = m.EmergencyContact.Name
		emPhone = m.EmergencyContact.Phone
		emRelation = m.EmergencyContact.Relation
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE members
		SET name = ?, email = ?, phone = ?, address = ?, birth_date = ?,
		    external_id = ?, center_id = ?, status = ?, emergency_name = ?,
		    emergency_phone = ?, emergency_relation = ?, notes = ?
		WHERE id = ?`,
		m.Name, m.Email, m.Phone, m.Address, m.BirthDate, m.ExternalID,
		m.CenterID, m.Status, emName, emPhone, emRelation, m.Notes, id,
	)
	if err != nil {
		return models.Member{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// DeleteMember refuses to remove a member that still owns ledger entries.
func (r *MemberRepository) DeleteMember(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var found int
	err = tx.QueryRowContext(ctx, `SELECT id FROM members WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrMemberNotFound
	}
	if err != nil {
		return err
	}

	var payments int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE member_id = ?`, id).Scan(&payments); err != nil {
		return err
	}
	if payments > 0 {
		return models.ErrMemberHasPayments
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MemberRepository) ListMembers(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	query := memberViewQuery + ` WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		query += ` AND (m.name LIKE ? OR m.email LIKE ? OR m.phone LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Status != "" {
		query += ` AND m.status = ?`
		args = append(args, filter.Status)
	}
	if filter.CenterID != 0 {
		query += ` AND m.center_id = ?`
		args = append(args, filter.CenterID)
	}
	query += ` ORDER BY m.name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		m, err := scanMemberView(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) ListByCenter(ctx context.Context, centerID int) ([]models.Member, error) {
	return r.ListMembers(ctx, models.MemberFilter{CenterID: centerID})
}

func (r *MemberRepository) Statistics(ctx context.Context) (models.MemberStatistics, error) {
	var stats models.MemberStatistics
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM members`,
		models.MemberStatusActive, models.MemberStatusInactive,
	).Scan(&stats.Total, &stats.Active, &stats.Inactive)
	if err != nil {
		return models.MemberStatistics{}, err
	}
	return stats, nil
}
