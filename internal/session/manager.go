package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/utkarshdubey2008/InstaPoster/internal/errors"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
	"github.com/utkarshdubey2008/InstaPoster/internal/repository"
	"github.com/utkarshdubey2008/InstaPoster/internal/service"
	"github.com/utkarshdubey2008/InstaPoster/internal/util"
)

// Button tags for inline keyboard callbacks
const (
	TagDisconnectYes = "disconnect_yes"
	TagDisconnectNo  = "disconnect_no"
	TagPostConfirm   = "post_confirm"
	TagPostCancel    = "post_cancel"
)

const captionPreviewLimit = 200

// Replier is the outbound half of the chat transport. The manager emits
// replies through it and never touches the transport library directly.
type Replier interface {
	Reply(chatID int64, text string)
	ReplyWithLink(chatID int64, text, label, url string)
	ReplyWithConfirm(chatID int64, text, yesTag, noTag string)
}

// conversation is one user's state machine position. Its mutex serializes
// every transport event for that user; instances are independent across
// users.
type conversation struct {
	mu    sync.Mutex
	state model.ConversationState
}

// Manager coordinates per-user conversations: it gates transport events
// against the current state, consults the staging cache and invokes the
// connect and publish services.
type Manager struct {
	users        repository.UserRepository
	history      repository.PublishHistoryRepository
	staging      *service.StagingCache
	connect      *service.ConnectService
	publisher    *service.PublisherService
	replier      Replier
	mediaURLBase string

	mu    sync.Mutex
	convs map[int64]*conversation
}

func NewManager(
	users repository.UserRepository,
	history repository.PublishHistoryRepository,
	staging *service.StagingCache,
	connect *service.ConnectService,
	publisher *service.PublisherService,
	replier Replier,
	mediaURLBase string,
) *Manager {
	return &Manager{
		users:        users,
		history:      history,
		staging:      staging,
		connect:      connect,
		publisher:    publisher,
		replier:      replier,
		mediaURLBase: mediaURLBase,
		convs:        make(map[int64]*conversation),
	}
}

func (m *Manager) conv(userID int64) *conversation {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.convs[userID]
	if !ok {
		c = &conversation{state: model.StateIdle}
		m.convs[userID] = c
	}
	return c
}

// State reports the user's current conversation state.
func (m *Manager) State(userID int64) model.ConversationState {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (m *Manager) HandleStart(ctx context.Context, userID int64, username, firstName string) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("start: lookup failed")
		return
	}
	if user == nil {
		var usernamePtr *string
		if username != "" {
			usernamePtr = &username
		}
		if _, err := m.users.Create(ctx, userID, usernamePtr); err != nil {
			log.Error().Err(err).Int64("telegramUserId", userID).Msg("start: create failed")
			return
		}
		log.Info().Int64("telegramUserId", userID).Msg("user created")
	}

	m.replier.Reply(userID, fmt.Sprintf(welcomeText, firstName))
}

func (m *Manager) HandleConnect(ctx context.Context, userID int64) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("connect: lookup failed")
		return
	}
	if user != nil && user.IsConnected {
		m.replier.Reply(userID, fmt.Sprintf(alreadyConnectedText, user.DisplayUsername()))
		return
	}

	authURL, err := m.connect.BeginConnect(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("connect: begin failed")
		m.replier.Reply(userID, fmt.Sprintf(connectFailedText, "could not start authorization"))
		return
	}

	c.state = model.StateConnecting
	m.replier.ReplyWithLink(userID, connectPromptText, "🔗 Connect Instagram", authURL)
}

func (m *Manager) HandleStatus(ctx context.Context, userID int64) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("status: lookup failed")
		return
	}
	if user == nil {
		m.replier.Reply(userID, notStartedText)
		return
	}

	if !user.IsConnected {
		m.replier.Reply(userID, statusDisconnectedText)
		return
	}

	count, err := m.history.CountByTelegramUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("status: history count failed")
	}

	text := fmt.Sprintf(statusConnectedText,
		user.DisplayUsername(), user.LastUsed.Format(time.DateTime), count)

	recent, err := m.history.FindByTelegramUserID(ctx, userID, 1, 0)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("status: history lookup failed")
	}
	if len(recent) > 0 && recent[0].Success && recent[0].MediaID != nil {
		text += fmt.Sprintf(statusLastReelText, *recent[0].MediaID)
	}

	m.replier.Reply(userID, text+statusFooterText)
}

func (m *Manager) HandleDisconnect(ctx context.Context, userID int64) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("disconnect: lookup failed")
		return
	}
	if user == nil || !user.IsConnected {
		m.replier.Reply(userID, noAccountToDisconnect)
		return
	}

	m.replier.ReplyWithConfirm(userID,
		fmt.Sprintf(disconnectConfirmText, user.DisplayUsername()),
		TagDisconnectYes, TagDisconnectNo)
}

func (m *Manager) HandleHelp(ctx context.Context, userID int64) {
	m.replier.Reply(userID, helpText)
}

func (m *Manager) HandleVideo(ctx context.Context, userID int64, video model.VideoRef) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("video: lookup failed")
		return
	}
	if user == nil || !user.IsConnected {
		m.replier.Reply(userID, notConnectedText)
		return
	}

	if err := m.staging.Put(userID, video); err != nil {
		// Rejected before staging; the conversation state is unchanged.
		m.replier.Reply(userID, fmt.Sprintf(videoOutOfRangeText, video.Duration))
		return
	}

	log.Info().
		Int64("telegramUserId", userID).
		Str("fileId", video.FileID).
		Int("duration", video.Duration).
		Msg("video staged")

	m.replier.Reply(userID, videoReceivedText)
}

func (m *Manager) HandlePost(ctx context.Context, userID int64) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	// A post flow already past this point is not restarted.
	switch c.state {
	case model.StateAwaitingCaption, model.StateConfirming, model.StatePublishing:
		return
	}

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("post: lookup failed")
		return
	}
	if user == nil || !user.IsConnected {
		m.replier.Reply(userID, notConnectedText)
		return
	}

	if !m.staging.Has(userID) {
		m.replier.Reply(userID, noVideoText)
		return
	}

	c.state = model.StateAwaitingCaption
	m.replier.Reply(userID, captionPromptText)
}

// HandleText is the caption path. Free text in any other state is ignored.
func (m *Manager) HandleText(ctx context.Context, userID int64, text string) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != model.StateAwaitingCaption {
		return
	}

	if err := m.staging.AttachCaption(userID, text); err != nil {
		// Staged video disappeared (e.g. swept); restart the flow.
		c.state = model.StateIdle
		m.replier.Reply(userID, noVideoText)
		return
	}

	c.state = model.StateConfirming
	preview := fmt.Sprintf(confirmPreviewText, util.Truncate(text, captionPreviewLimit))
	m.replier.ReplyWithConfirm(userID, preview, TagPostConfirm, TagPostCancel)
}

func (m *Manager) HandleButton(ctx context.Context, userID int64, tag string) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	switch tag {
	case TagDisconnectYes:
		m.handleDisconnectConfirmed(ctx, userID, c)
	case TagDisconnectNo:
		m.replier.Reply(userID, disconnectCancelText)
	case TagPostConfirm:
		m.handlePostConfirmed(ctx, userID, c)
	case TagPostCancel:
		m.handlePostCancelled(userID, c)
	default:
		log.Warn().Str("tag", tag).Int64("telegramUserId", userID).Msg("unknown button tag")
	}
}

func (m *Manager) handleDisconnectConfirmed(ctx context.Context, userID int64, c *conversation) {
	if _, err := m.connect.Disconnect(ctx, userID); err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("disconnect failed")
		return
	}
	m.staging.Clear(userID)
	c.state = model.StateIdle
	m.replier.Reply(userID, disconnectedText)
}

func (m *Manager) handlePostCancelled(userID int64, c *conversation) {
	if c.state != model.StateAwaitingCaption && c.state != model.StateConfirming {
		return
	}
	m.staging.Clear(userID)
	c.state = model.StateIdle
	m.replier.Reply(userID, postCancelledText)
}

// handlePostConfirmed runs the publish protocol. A double-press is a no-op:
// the first press moves the state to publishing, and even a racing press
// would find the staging entry already taken.
func (m *Manager) handlePostConfirmed(ctx context.Context, userID int64, c *conversation) {
	if c.state != model.StateConfirming {
		return
	}

	video, caption, err := m.staging.Take(userID)
	if err != nil {
		c.state = model.StateIdle
		m.replier.Reply(userID, missingDataText)
		return
	}

	user, err := m.users.FindByTelegramID(ctx, userID)
	if err != nil || user == nil {
		c.state = model.StateIdle
		m.replier.Reply(userID, missingDataText)
		return
	}
	credential, connected := user.Credential()
	if !connected {
		c.state = model.StateIdle
		m.replier.Reply(userID, notConnectedText)
		return
	}

	c.state = model.StatePublishing
	m.replier.Reply(userID, publishingText)

	videoURL := fmt.Sprintf("%s/video/%d", m.mediaURLBase, userID)

	log.Info().
		Int64("telegramUserId", userID).
		Str("fileId", video.FileID).
		Str("videoUrl", videoURL).
		Msg("publish attempt started")

	// Holds only this user's conversation lock for the duration; other
	// users' conversations are unaffected. Cancel is not defined past this
	// point: the attempt runs to a terminal outcome.
	outcome := m.publisher.Run(ctx, userID, credential, videoURL, caption)
	c.state = model.StateIdle

	if err := m.users.TouchLastUsed(ctx, userID); err != nil {
		log.Error().Err(err).Int64("telegramUserId", userID).Msg("touch last used failed")
	}

	if outcome.Success {
		m.replier.Reply(userID, fmt.Sprintf(publishSuccessText, user.DisplayUsername(), outcome.MediaID))
		return
	}

	log.Warn().
		Int64("telegramUserId", userID).
		Str("errorKind", string(outcome.ErrorKind)).
		Str("detail", outcome.Detail).
		Msg("publish attempt failed")

	switch outcome.ErrorKind {
	case model.PublishErrorContainer:
		m.replier.Reply(userID, publishContainerFailedText)
	case model.PublishErrorTimeout:
		m.replier.Reply(userID, publishTimeoutText)
	default:
		m.replier.Reply(userID, publishFailedText)
	}
}

// HandleOAuthCallback resolves an out-of-band authorization callback and
// reports the result back to the originating conversation.
func (m *Manager) HandleOAuthCallback(ctx context.Context, userID int64, username string, callbackErr error) {
	c := m.conv(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = model.StateIdle

	if callbackErr != nil {
		reason := "authorization failed"
		if appErr, ok := apperrors.AsAppError(callbackErr); ok {
			reason = appErr.Message
		}
		m.replier.Reply(userID, fmt.Sprintf(connectFailedText, reason))
		return
	}

	m.replier.Reply(userID, fmt.Sprintf(connectedText, username))
}
