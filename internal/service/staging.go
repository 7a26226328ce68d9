package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

// Instagram reel duration bounds in seconds
const (
	MinReelDuration = 3
	MaxReelDuration = 90
)

// StagingCache holds each user's pending video and caption between receipt
// and publish confirmation. One entry per user; a new video replaces any
// prior unconsumed one.
type StagingCache struct {
	mu      sync.Mutex
	entries map[int64]*model.StagedUpload
}

func NewStagingCache() *StagingCache {
	return &StagingCache{entries: make(map[int64]*model.StagedUpload)}
}

// Put validates the duration and stages the video. A duration of zero means
// the transport did not report one and is accepted as-is.
func (c *StagingCache) Put(telegramUserID int64, video model.VideoRef) error {
	if video.Duration != 0 && (video.Duration < MinReelDuration || video.Duration > MaxReelDuration) {
		return apperrors.InvalidDuration(video.Duration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[telegramUserID] = &model.StagedUpload{
		Video:    video,
		StagedAt: time.Now(),
	}
	return nil
}

func (c *StagingCache) AttachCaption(telegramUserID int64, caption string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[telegramUserID]
	if !ok {
		return apperrors.NoStagedVideo()
	}
	entry.Caption = &caption
	return nil
}

// Take atomically removes and returns the staged entry. A second call right
// after a successful one reports incomplete, so a single staged upload can
// never be published twice.
func (c *StagingCache) Take(telegramUserID int64) (model.VideoRef, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[telegramUserID]
	if !ok || entry.Caption == nil {
		return model.VideoRef{}, "", apperrors.IncompleteUpload()
	}
	delete(c.entries, telegramUserID)
	return entry.Video, *entry.Caption, nil
}

func (c *StagingCache) Has(telegramUserID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[telegramUserID]
	return ok
}

func (c *StagingCache) Clear(telegramUserID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, telegramUserID)
}

func (c *StagingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// SweepStale drops entries staged longer ago than maxAge and returns how
// many were removed.
func (c *StagingCache) SweepStale(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for userID, entry := range c.entries {
		if entry.StagedAt.Before(cutoff) {
			delete(c.entries, userID)
			removed++
		}
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("stale staged uploads swept")
	}
	return removed
}
