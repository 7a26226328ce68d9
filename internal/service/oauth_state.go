package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
	"github.com/utkarshdubey2008/InstaPoster/internal/util"
)

// OAuthStateService issues and redeems the single-use state tokens that bind
// an Instagram authorization callback to a Telegram user.
type OAuthStateService struct {
	repo repository.OAuthStateRepository
	ttl  time.Duration
}

func NewOAuthStateService(repo repository.OAuthStateRepository, ttl time.Duration) *OAuthStateService {
	return &OAuthStateService{repo: repo, ttl: ttl}
}

func (s *OAuthStateService) Issue(ctx context.Context, telegramUserID int64) (string, error) {
	token, err := util.GenerateStateToken()
	if err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}

	if err := s.repo.Create(ctx, token, telegramUserID, s.ttl); err != nil {
		return "", err
	}

	log.Debug().
		Int64("telegramUserId", telegramUserID).
		Dur("ttl", s.ttl).
		Msg("oauth state issued")

	return token, nil
}

// Redeem consumes the token. The second redemption of the same token always
// reports absent, which is what stops authorization-code replay through a
// stale callback link.
func (s *OAuthStateService) Redeem(ctx context.Context, token string) (int64, bool, error) {
	telegramUserID, ok, err := s.repo.Consume(ctx, token)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		log.Warn().Msg("oauth state redemption failed: token absent or expired")
		return 0, false, nil
	}

	log.Info().Int64("telegramUserId", telegramUserID).Msg("oauth state redeemed")
	return telegramUserID, true, nil
}
