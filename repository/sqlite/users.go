package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hassanaziz0012/yt-video-summarizer/errors"
	"github.com/hassanaziz0012/yt-video-summarizer/models"
)

// UserRepository is the sqlite-backed implementation of
// repository.UserRepository.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	const op = "sqlite.UserRepository.Save"

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, name, access_token, refresh_token, token_expiry, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			name = excluded.name,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expiry = excluded.token_expiry`,
		user.Email,
		user.Name,
		user.AccessToken,
		user.RefreshToken,
		user.TokenExpiry,
		user.CreatedAt,
	)
	if err != nil {
		return errors.Internal(op, err, "failed to save user")
	}

	row := r.db.QueryRowContext(ctx, "SELECT id FROM users WHERE email = ?", user.Email)
	if err := row.Scan(&user.ID); err != nil {
		return errors.Internal(op, err, "failed to read back user ID")
	}

	return nil
}

func (r *UserRepository) Find(ctx context.Context, id int64) (*models.User, error) {
	const op = "sqlite.UserRepository.Find"

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, access_token, refresh_token, token_expiry, created_at
		FROM users WHERE id = ?`, id)

	var user models.User
	var expiry sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.AccessToken,
		&user.RefreshToken,
		&expiry,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, err, "user not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "failed to load user")
	}

	if expiry.Valid {
		user.TokenExpiry = expiry.Time
	}

	return &user, nil
}
