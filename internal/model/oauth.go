package model

import (
	"time"
)

// OAuthState correlates an Instagram authorization callback with the
// Telegram user who initiated the connect flow. Records are single-use and
// expire with the store's TTL.
type OAuthState struct {
	TelegramUserID int64     `json:"telegram_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
