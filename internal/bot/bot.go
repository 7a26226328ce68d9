package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/config"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

// Session receives decoded chat events. The session package's Manager
// satisfies it; the indirection keeps this package free of conversation
// logic.
type Session interface {
	HandleStart(ctx context.Context, userID int64, username, firstName string)
	HandleConnect(ctx context.Context, userID int64)
	HandleStatus(ctx context.Context, userID int64)
	HandleDisconnect(ctx context.Context, userID int64)
	HandleHelp(ctx context.Context, userID int64)
	HandlePost(ctx context.Context, userID int64)
	HandleVideo(ctx context.Context, userID int64, video model.VideoRef)
	HandleText(ctx context.Context, userID int64, text string)
	HandleButton(ctx context.Context, userID int64, tag string)
}

// Bot wraps the Telegram transport. It decodes incoming updates into
// Session events and implements the outbound Replier surface.
type Bot struct {
	api *tgbotapi.BotAPI
}

func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")
	return &Bot{api: api}, nil
}

// Reply sends a plain text message. Send failures are logged and dropped;
// the conversation state has already advanced and Telegram delivery is
// best effort.
func (b *Bot) Reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("send failed")
	}
}

// ReplyWithLink sends text with a single URL button underneath.
func (b *Bot) ReplyWithLink(chatID int64, text, label, url string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(label, url),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("send failed")
	}
}

// ReplyWithConfirm sends text with yes/no callback buttons.
func (b *Bot) ReplyWithConfirm(chatID int64, text, yesTag, noTag string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes", yesTag),
			tgbotapi.NewInlineKeyboardButtonData("❌ No", noTag),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("send failed")
	}
}

// Run long-polls Telegram until ctx is cancelled. Each update is dispatched
// on its own goroutine; per-user ordering is enforced downstream by the
// session manager's conversation locks.
func (b *Bot) Run(ctx context.Context, session Session) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = config.TelegramPollTimeout

	updates := b.api.GetUpdatesChan(u)
	log.Info().Msg("telegram update loop started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("telegram update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.dispatch(ctx, session, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, session Session, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		cq := update.CallbackQuery
		// Acknowledge immediately so the client stops its spinner.
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			log.Warn().Err(err).Msg("callback ack failed")
		}
		session.HandleButton(ctx, cq.From.ID, cq.Data)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			session.HandleStart(ctx, userID, msg.From.UserName, msg.From.FirstName)
		case "connect":
			session.HandleConnect(ctx, userID)
		case "status":
			session.HandleStatus(ctx, userID)
		case "disconnect":
			session.HandleDisconnect(ctx, userID)
		case "post":
			session.HandlePost(ctx, userID)
		case "help":
			session.HandleHelp(ctx, userID)
		default:
			log.Debug().Str("command", msg.Command()).Int64("telegramUserId", userID).Msg("unknown command")
		}
		return
	}

	switch {
	case msg.Video != nil:
		session.HandleVideo(ctx, userID, model.VideoRef{
			FileID:   msg.Video.FileID,
			Duration: msg.Video.Duration,
		})
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "video/"):
		// Documents carry no duration; range checking happens at publish
		// time on Instagram's side.
		session.HandleVideo(ctx, userID, model.VideoRef{FileID: msg.Document.FileID})
	case msg.Text != "":
		session.HandleText(ctx, userID, msg.Text)
	}
}
