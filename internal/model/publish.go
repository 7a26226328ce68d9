package model

import (
	"time"
)

// PublishRecord is an append-only history row for one publish attempt.
type PublishRecord struct {
	ID             int64     `db:"id" json:"id"`
	TelegramUserID int64     `db:"telegram_user_id" json:"telegramUserId"`
	MediaID        *string   `db:"media_id" json:"mediaId,omitempty"`
	Caption        string    `db:"caption" json:"caption"`
	Success        bool      `db:"success" json:"success"`
	ErrorMessage   *string   `db:"error_message" json:"errorMessage,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type CreatePublishRecordParams struct {
	TelegramUserID int64
	MediaID        *string
	Caption        string
	Success        bool
	ErrorMessage   *string
}

// VideoRef is an opaque handle to an uploaded video. Duration is zero when
// the transport did not report one.
type VideoRef struct {
	FileID   string
	Duration int
}

// StagedUpload holds one user's pending video and caption between receipt
// and publish confirmation.
type StagedUpload struct {
	Video    VideoRef
	Caption  *string
	StagedAt time.Time
}
