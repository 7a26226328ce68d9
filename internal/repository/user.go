package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

type UserRepository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Create(ctx context.Context, telegramID int64, telegramUsername *string) (*model.User, error)
	UpdateInstagram(ctx context.Context, telegramID int64, params model.UpdateInstagramParams) (*model.User, error)
	TouchLastUsed(ctx context.Context, telegramID int64) error
	Count(ctx context.Context) (int, error)
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE telegram_id = $1
	`, telegramID)
	return HandleNotFound(&user, err)
}

func (r *userRepo) Create(ctx context.Context, telegramID int64, telegramUsername *string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users (telegram_id, telegram_username, is_connected, last_used)
		VALUES ($1, $2, FALSE, NOW())
		RETURNING *
	`, telegramID, telegramUsername)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateInstagram sets the Instagram identity fields. is_connected is derived
// from the access token so the connection flag can never drift from the
// credential.
func (r *userRepo) UpdateInstagram(ctx context.Context, telegramID int64, params model.UpdateInstagramParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET
			instagram_id = $2,
			instagram_username = $3,
			instagram_access_token = $4,
			is_connected = ($4 IS NOT NULL AND $4 <> ''),
			last_used = NOW()
		WHERE telegram_id = $1
		RETURNING *
	`, telegramID, params.InstagramID, params.InstagramUsername, params.AccessToken)
	return HandleNotFound(&user, err)
}

func (r *userRepo) TouchLastUsed(ctx context.Context, telegramID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_used = NOW() WHERE telegram_id = $1
	`, telegramID)
	return err
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}
