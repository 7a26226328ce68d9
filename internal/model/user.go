package model

import (
	"time"
)

type User struct {
	TelegramID           int64     `db:"telegram_id" json:"telegramId"`
	TelegramUsername     *string   `db:"telegram_username" json:"telegramUsername,omitempty"`
	InstagramID          *string   `db:"instagram_id" json:"instagramId,omitempty"`
	InstagramUsername    *string   `db:"instagram_username" json:"instagramUsername,omitempty"`
	InstagramAccessToken *string   `db:"instagram_access_token" json:"-"`
	IsConnected          bool      `db:"is_connected" json:"isConnected"`
	LastUsed             time.Time `db:"last_used" json:"lastUsed"`
}

// Credential returns the access token if the user is connected.
func (u *User) Credential() (string, bool) {
	if u.InstagramAccessToken == nil || *u.InstagramAccessToken == "" {
		return "", false
	}
	return *u.InstagramAccessToken, true
}

// DisplayUsername is the Instagram handle shown in chat replies.
func (u *User) DisplayUsername() string {
	if u.InstagramUsername == nil {
		return ""
	}
	return *u.InstagramUsername
}

// UpdateInstagramParams carries the Instagram identity fields for a user
// update. All-nil values disconnect the account.
type UpdateInstagramParams struct {
	InstagramID       *string
	InstagramUsername *string
	AccessToken       *string
}
