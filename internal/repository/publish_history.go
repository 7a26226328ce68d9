package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

// PublishHistoryRepository is append-only; rows are never mutated after
// creation.
type PublishHistoryRepository interface {
	Create(ctx context.Context, params model.CreatePublishRecordParams) (*model.PublishRecord, error)
	FindByTelegramUserID(ctx context.Context, telegramUserID int64, limit, offset int) ([]model.PublishRecord, error)
	CountByTelegramUserID(ctx context.Context, telegramUserID int64) (int, error)
}

type publishHistoryRepo struct {
	db *sqlx.DB
}

func NewPublishHistoryRepository(db *sqlx.DB) PublishHistoryRepository {
	return &publishHistoryRepo{db: db}
}

func (r *publishHistoryRepo) Create(ctx context.Context, params model.CreatePublishRecordParams) (*model.PublishRecord, error) {
	var record model.PublishRecord
	err := r.db.GetContext(ctx, &record, `
		INSERT INTO publish_history (telegram_user_id, media_id, caption, success, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.TelegramUserID, params.MediaID, params.Caption, params.Success, params.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *publishHistoryRepo) FindByTelegramUserID(ctx context.Context, telegramUserID int64, limit, offset int) ([]model.PublishRecord, error) {
	var records []model.PublishRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM publish_history
		WHERE telegram_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, telegramUserID, limit, offset)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *publishHistoryRepo) CountByTelegramUserID(ctx context.Context, telegramUserID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM publish_history WHERE telegram_user_id = $1
	`, telegramUserID)
	return count, err
}
