package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"callcenter/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, roleID *int) ([]models.User, error)

	// refresh helpers
	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)

	GetTelegramChatID(ctx context.Context, userID int64) (int64, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, full_name, email, password_hash, role_id,
			refresh_token, refresh_expires_at, refresh_revoked,
			COALESCE(telegram_chat_id,0), created_at`

func scanUser(s rowScanner) (*models.User, error) {
	u := &models.User{}
	var (
		rt  sql.NullString
		rte sql.NullTime
		rr  sql.NullBool
	)
	if err := s.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID,
		&rt, &rte, &rr,
		&u.TelegramChatID, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (
			full_name, email, password_hash, role_id,
			refresh_token, refresh_expires_at, refresh_revoked,
			telegram_chat_id, created_at
		)
		VALUES ($1,$2,$3,$4,NULL,NULL,FALSE,NULLIF($5::BIGINT,0),$6)
		RETURNING id
	`
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := r.DB.QueryRowContext(ctx, q,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.TelegramChatID,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, roleID *int) ([]models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if roleID != nil {
		q += ` WHERE role_id = $1`
		args = append(args, *roleID)
	}
	q += ` ORDER BY full_name ASC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.ExecContext(ctx, q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3
		RETURNING ` + userColumns
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, newToken, newExpiresAt, oldToken))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("rotate refresh: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by refresh: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetTelegramChatID(ctx context.Context, userID int64) (int64, error) {
	var chat sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		`SELECT telegram_chat_id FROM users WHERE id=$1`, userID,
	).Scan(&chat)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	if chat.Valid {
		return chat.Int64, nil
	}
	return 0, nil
}
