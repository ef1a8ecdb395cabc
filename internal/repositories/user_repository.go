package repositories

import (
	"context"
	"database/sql"
	"errors"

	"membroBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u          models.User
		centerID   sql.NullInt64
		centerName sql.NullString
		lastLogin  sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &centerID,
		&centerName, &u.Active, &u.CreatedAt, &lastLogin,
	)
	if err != nil {
		return models.User{}, err
	}
	if centerID.Valid {
		v := int(centerID.Int64)
		u.CenterID = &v
	}
	u.CenterName = centerName.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

const userViewQuery = `
SELECT u.id, u.name, u.email, u.password_hash, u.role, u.center_id,
       c.name, u.active, u.created_at, u.last_login_at
FROM users u
LEFT JOIN centers c ON u.center_id = c.id
`

func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, u.Email).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, models.ErrDuplicateEmail
	}

	query := `
		INSERT INTO users (name, email, password_hash, role, center_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		u.Name, u.Email, u.Password, u.Role, u.CenterID, u.Active,
	)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = int(id)
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, userViewQuery+` WHERE u.email = ? AND u.active = TRUE`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, userViewQuery+` WHERE u.id = ? AND u.active = TRUE`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = ?`, id)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, s models.Session) error {
	query := `
		INSERT INTO sessions (user_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token),
		                        expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, s.UserID, s.Role, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, role, refresh_token, expires_at
		FROM sessions
		WHERE refresh_token = ?`, refreshToken,
	).Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}
