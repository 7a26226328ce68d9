package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/instagram"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
)

// PublishOutcome is the tagged result of one complete publish attempt.
// Either MediaID is set and Success is true, or ErrorKind names the terminal
// failure state.
type PublishOutcome struct {
	Success   bool
	MediaID   string
	ErrorKind model.PublishErrorKind
	Detail    string
}

// ErrorMessage renders the outcome for the history record.
func (o PublishOutcome) ErrorMessage() *string {
	if o.Success {
		return nil
	}
	msg := string(o.ErrorKind)
	if o.Detail != "" {
		msg = msg + ": " + o.Detail
	}
	return &msg
}

// PublisherService runs the asynchronous container-based publish protocol:
// create a container once, poll its processing status at a fixed interval up
// to a fixed ceiling, then publish on the first observed readiness.
type PublisherService struct {
	api          instagram.API
	history      repository.PublishHistoryRepository
	pollInterval time.Duration
	maxAttempts  int
}

func NewPublisherService(
	api instagram.API,
	history repository.PublishHistoryRepository,
	pollInterval time.Duration,
	maxAttempts int,
) *PublisherService {
	return &PublisherService{
		api:          api,
		history:      history,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
	}
}

// Run posts one reel and records the outcome to history exactly once,
// success or failure. The caller treats the whole sequence as a single unit;
// no partial success is ever reported.
func (s *PublisherService) Run(ctx context.Context, telegramUserID int64, accessToken, videoURL, caption string) PublishOutcome {
	outcome := s.post(ctx, accessToken, videoURL, caption)

	params := model.CreatePublishRecordParams{
		TelegramUserID: telegramUserID,
		Caption:        caption,
		Success:        outcome.Success,
		ErrorMessage:   outcome.ErrorMessage(),
	}
	if outcome.Success {
		params.MediaID = &outcome.MediaID
	}

	if _, err := s.history.Create(ctx, params); err != nil {
		log.Error().Err(err).
			Int64("telegramUserId", telegramUserID).
			Msg("failed to record publish history")
	}

	return outcome
}

func (s *PublisherService) post(ctx context.Context, accessToken, videoURL, caption string) PublishOutcome {
	containerID, err := s.api.CreateContainer(ctx, accessToken, videoURL, caption)
	if err != nil {
		return PublishOutcome{ErrorKind: model.PublishErrorContainer, Detail: err.Error()}
	}

	log.Info().Str("containerId", containerID).Msg("media container created, polling status")

	ready := false
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		ok, err := s.api.CheckStatus(ctx, accessToken, containerID)
		if err != nil {
			// Transient faults during the processing window count as a
			// non-ready poll, not a hard failure.
			log.Debug().Err(err).Int("attempt", attempt).Msg("status poll fault absorbed")
			ok = false
		}
		if ok {
			ready = true
			break
		}
		if attempt == s.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return PublishOutcome{ErrorKind: model.PublishErrorTimeout, Detail: ctx.Err().Error()}
		case <-time.After(s.pollInterval):
		}
	}

	if !ready {
		log.Warn().Str("containerId", containerID).Int("attempts", s.maxAttempts).Msg("media processing timed out")
		return PublishOutcome{ErrorKind: model.PublishErrorTimeout}
	}

	mediaID, err := s.api.Publish(ctx, accessToken, containerID)
	if err != nil {
		return PublishOutcome{ErrorKind: model.PublishErrorPublish, Detail: err.Error()}
	}

	log.Info().Str("containerId", containerID).Str("mediaId", mediaID).Msg("reel published")
	return PublishOutcome{Success: true, MediaID: mediaID}
}
