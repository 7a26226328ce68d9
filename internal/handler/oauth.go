package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

// ConnectFlow is the slice of the connect service the callback needs.
type ConnectFlow interface {
	CompleteCallback(ctx context.Context, code, state string) (int64, *model.User, error)
	RedeemState(ctx context.Context, state string) (int64, bool)
}

// Notifier delivers the callback outcome to the user's chat conversation.
type Notifier interface {
	HandleOAuthCallback(ctx context.Context, userID int64, username string, callbackErr error)
}

type OAuthHandler struct {
	connect  ConnectFlow
	notifier Notifier
}

func NewOAuthHandler(connect ConnectFlow, notifier Notifier) *OAuthHandler {
	return &OAuthHandler{
		connect:  connect,
		notifier: notifier,
	}
}

// Callback terminates the Instagram authorization redirect. The browser
// gets a page either way; the chat notification is sent off the request
// path so a busy conversation cannot stall the response.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if errMsg := query.Get("error"); errMsg != "" {
		log.Warn().Str("error", errMsg).Msg("authorization denied at Instagram")

		// The state still identifies which user to notify.
		if state := query.Get("state"); state != "" {
			if userID, ok := h.connect.RedeemState(ctx, state); ok {
				h.notify(userID, "", apperrors.New(apperrors.ErrCodeExchangeFailed, "authorization was denied"))
			}
		}

		renderErrorPage(w, http.StatusBadRequest,
			"Authorization Denied",
			"You denied the authorization request. Return to Telegram and try /connect again.")
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		renderErrorPage(w, http.StatusBadRequest,
			"Invalid Request",
			"The authorization response is missing required parameters.")
		return
	}

	userID, user, err := h.connect.CompleteCallback(ctx, code, state)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("authorization callback failed")

		if apperrors.GetCode(err) == apperrors.ErrCodeInvalidState {
			renderErrorPage(w, http.StatusBadRequest,
				"Link Expired",
				"This authorization link has expired or was already used. Return to Telegram and try /connect again.")
			return
		}

		if userID != 0 {
			h.notify(userID, "", err)
		}
		renderErrorPage(w, http.StatusInternalServerError,
			"Connection Failed",
			"Something went wrong while connecting your account. Return to Telegram and try /connect again.")
		return
	}

	username := user.DisplayUsername()
	h.notify(userID, username, nil)
	renderSuccessPage(w, username)
}

func (h *OAuthHandler) notify(userID int64, username string, callbackErr error) {
	go h.notifier.HandleOAuthCallback(context.Background(), userID, username, callbackErr)
}
