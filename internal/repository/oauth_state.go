package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/utkarshdubey2008/InstaPoster/internal/model"
	"github.com/utkarshdubey2008/InstaPoster/internal/redis"
)

// ErrStateCollision is returned when a freshly generated state token already
// exists. With 32 bytes of entropy this is effectively unreachable.
var ErrStateCollision = errors.New("oauth state token collision")

// OAuthStateRepository persists single-use authorization state tokens.
// Backed by Redis: the TTL makes expired records absent without a sweeper,
// and GETDEL makes redemption atomic so a token can never be consumed twice.
type OAuthStateRepository interface {
	Create(ctx context.Context, state string, telegramUserID int64, ttl time.Duration) error
	Consume(ctx context.Context, state string) (int64, bool, error)
}

type oauthStateRepo struct {
	rdb *redis.Client
}

func NewOAuthStateRepository(rdb *redis.Client) OAuthStateRepository {
	return &oauthStateRepo{rdb: rdb}
}

func (r *oauthStateRepo) Create(ctx context.Context, state string, telegramUserID int64, ttl time.Duration) error {
	payload, err := json.Marshal(model.OAuthState{
		TelegramUserID: telegramUserID,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal oauth state: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, redis.OAuthStateKey(state), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("store oauth state: %w", err)
	}
	if !ok {
		return ErrStateCollision
	}
	return nil
}

func (r *oauthStateRepo) Consume(ctx context.Context, state string) (int64, bool, error) {
	payload, err := r.rdb.GetDel(ctx, redis.OAuthStateKey(state)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("consume oauth state: %w", err)
	}

	var record model.OAuthState
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return 0, false, fmt.Errorf("unmarshal oauth state: %w", err)
	}
	return record.TelegramUserID, true, nil
}
