package bot

import (
	"SmartShop/internal/lib/sl"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

// telegram rejects longer texts
const maxMessageLength = 4096

// TgBot forwards support alerts and error logs to the admin chat.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

// Start polls for updates and answers /start with the chat id, which is what
// goes into telegram.admin_id. Blocks until the updater stops.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.With(sl.Err(err)).Warn("handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	dispatcher.AddHandler(handlers.NewCommand("start", t.start))

	updater := ext.NewUpdater(dispatcher, nil)
	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}

	t.log.With(slog.String("bot", t.botUsername)).Info("telegram bot started")
	updater.Idle()
	return nil
}

func (t *TgBot) start(b *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	text := fmt.Sprintf("SmartShop support alerts.\nYour chat id: %d", chatId)
	if chatId == t.adminId {
		text += "\nThis chat receives customer questions."
	}
	_, err := b.SendMessage(chatId, text, nil)
	return err
}

// SendMessage delivers a plain-text alert to the admin chat.
func (t *TgBot) SendMessage(msg string) {
	if t.adminId == 0 {
		return
	}
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	text = Truncate(strings.TrimSpace(text), maxMessageLength)
	if text == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
	if err != nil {
		t.log.With(
			slog.Int64("id", chatId),
			sl.Err(err),
		).Warn("sending message")
	}
}

// Truncate cuts text to at most limit runes, marking the cut with an ellipsis.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
