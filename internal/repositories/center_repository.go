package repositories

import (
	"context"
	"database/sql"
	"errors"

	"membroBack/internal/models"
)

type CenterRepository struct {
	DB *sql.DB
}

const centerViewQuery = `
SELECT c.id, c.name, c.description, c.address, c.phone, c.email, c.manager,
       c.active, c.monthly_dues, c.created_at,
       (SELECT COUNT(*) FROM members m WHERE m.center_id = c.id),
       (SELECT COUNT(*) FROM members m WHERE m.center_id = c.id AND m.status = 'Active')
FROM centers c
`

func scanCenterView(row rowScanner) (models.Center, error) {
	var (
		c           models.Center
		description sql.NullString
		phone       sql.NullString
		email       sql.NullString
		manager     sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.Name, &description, &c.Address, &phone, &email, &manager,
		&c.Active, &c.MonthlyDues, &c.CreatedAt, &c.TotalMembers, &c.ActiveMembers,
	)
	if err != nil {
		return models.Center{}, err
	}
	c.Description = description.String
	c.Phone = phone.String
	c.Email = email.String
	c.Manager = manager.String
	return c, nil
}

func (r *CenterRepository) CreateCenter(ctx context.Context, c models.Center) (models.Center, error) {
	query := `
		INSERT INTO centers
			(name, description, address, phone, email, manager, active,
			 monthly_dues, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		c.Name, c.Description, c.Address, c.Phone, c.Email, c.Manager,
		c.Active, c.MonthlyDues,
	)
	if err != nil {
		return models.Center{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Center{}, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *CenterRepository) GetCenterByID(ctx context.Context, id int) (models.Center, error) {
	row := r.DB.QueryRowContext(ctx, centerViewQuery+` WHERE c.id = ?`, id)
	c, err := scanCenterView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Center{}, models.ErrCenterNotFound
	}
	if err != nil {
		return models.Center{}, err
	}
	return c, nil
}

func (r *CenterRepository) UpdateCenter(ctx context.Context, c models.Center) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE centers
		SET name = ?, description = ?, address = ?, phone = ?, email = ?,
		    manager = ?, active = ?, monthly_dues = ?
		WHERE id = ?`,
		c.Name, c.Description, c.Address, c.Phone, c.Email, c.Manager,
		c.Active, c.MonthlyDues, c.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCenterNotFound
	}
	return nil
}

// DeleteCenter refuses to remove a center that still has members.
func (r *CenterRepository) DeleteCenter(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var found int
	err = tx.QueryRowContext(ctx, `SELECT id FROM centers WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrCenterNotFound
	}
	if err != nil {
		return err
	}

	var members int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE center_id = ?`, id).Scan(&members); err != nil {
		return err
	}
	if members > 0 {
		return models.ErrCenterHasMembers
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM centers WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CenterRepository) ListCenters(ctx context.Context, filter models.CenterFilter) ([]models.Center, error) {
	query := centerViewQuery + ` WHERE 1=1`
	var args []interface{}

	if filter.Search != "" {
		query += ` AND (c.name LIKE ? OR c.address LIKE ? OR c.manager LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Active != nil {
		query += ` AND c.active = ?`
		args = append(args, *filter.Active)
	}
	query += ` ORDER BY c.name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	centers := []models.Center{}
	for rows.Next() {
		c, err := scanCenterView(rows)
		if err != nil {
			return nil, err
		}
		centers = append(centers, c)
	}
	return centers, rows.Err()
}
