package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/instagram"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
)

// ConnectService drives the Instagram account connect and disconnect flows.
type ConnectService struct {
	users  repository.UserRepository
	states *OAuthStateService
	api    instagram.API
}

func NewConnectService(
	users repository.UserRepository,
	states *OAuthStateService,
	api instagram.API,
) *ConnectService {
	return &ConnectService{
		users:  users,
		states: states,
		api:    api,
	}
}

// BeginConnect issues a state token and returns the authorization URL the
// user must open.
func (s *ConnectService) BeginConnect(ctx context.Context, telegramUserID int64) (string, error) {
	token, err := s.states.Issue(ctx, telegramUserID)
	if err != nil {
		return "", fmt.Errorf("begin connect: %w", err)
	}
	return s.api.BuildAuthURL(token), nil
}

// RedeemState consumes a state token without completing the exchange. Used
// when the provider reports an error on the callback, so the originating
// conversation can still be notified.
func (s *ConnectService) RedeemState(ctx context.Context, state string) (int64, bool) {
	telegramUserID, ok, err := s.states.Redeem(ctx, state)
	if err != nil {
		log.Error().Err(err).Msg("redeem state failed")
		return 0, false
	}
	return telegramUserID, ok
}

// CompleteCallback handles the authorization callback in sequence: redeem
// state, exchange code, fetch identity, update the user record. The returned
// telegram user id is non-zero whenever the state was valid, even if a later
// step failed, so the caller can report the failure to the right chat.
func (s *ConnectService) CompleteCallback(ctx context.Context, code, state string) (int64, *model.User, error) {
	telegramUserID, ok, err := s.states.Redeem(ctx, state)
	if err != nil {
		return 0, nil, apperrors.Database(err)
	}
	if !ok {
		return 0, nil, apperrors.InvalidOAuthState()
	}

	accessToken, err := s.api.ExchangeCode(ctx, code)
	if err != nil {
		return telegramUserID, nil, apperrors.ExchangeFailed(err)
	}

	identity, err := s.api.FetchIdentity(ctx, accessToken)
	if err != nil {
		return telegramUserID, nil, apperrors.IdentityFailed(err)
	}

	user, err := s.users.UpdateInstagram(ctx, telegramUserID, model.UpdateInstagramParams{
		InstagramID:       &identity.ID,
		InstagramUsername: &identity.Username,
		AccessToken:       &accessToken,
	})
	if err != nil {
		return telegramUserID, nil, apperrors.Database(err)
	}
	if user == nil {
		return telegramUserID, nil, apperrors.NotFound("User")
	}

	log.Info().
		Int64("telegramUserId", telegramUserID).
		Str("instagramUsername", identity.Username).
		Msg("instagram account connected")

	return telegramUserID, user, nil
}

// Disconnect clears the Instagram identifiers and credential; the repository
// flips is_connected to false as a consequence of the NULL token.
func (s *ConnectService) Disconnect(ctx context.Context, telegramUserID int64) (*model.User, error) {
	user, err := s.users.UpdateInstagram(ctx, telegramUserID, model.UpdateInstagramParams{})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	log.Info().Int64("telegramUserId", telegramUserID).Msg("instagram account disconnected")
	return user, nil
}
