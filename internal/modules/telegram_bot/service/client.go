package service

import (
	"context"
	"fmt"
	"sync"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"
	signalssvc "signal_bot/internal/modules/signals/service"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Assistant answers conversational messages. Implemented by the ai module.
type Assistant interface {
	Reply(ctx context.Context, userID int64, text string) string
}

// Telegram wraps the bot API: command handling, conversational replies and
// the signal-channel intake.
type Telegram struct {
	bot        *tgbot.BotAPI
	cfg        *config.Config
	dispatcher *signalssvc.Dispatcher
	registry   *signalssvc.Registry
	assistant  Assistant
	faq        *FAQ
	limiter    *rateLimiter
	health     *healthsvc.State

	mu    sync.Mutex
	stats map[int64]*models.UserStats
}

func NewTelegram(
	cfg *config.Config,
	dispatcher *signalssvc.Dispatcher,
	registry *signalssvc.Registry,
	assistant Assistant,
	state *healthsvc.State,
) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	faq, err := LoadFAQ(cfg.FAQFile)
	if err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}

	return &Telegram{
		bot:        b,
		cfg:        cfg,
		dispatcher: dispatcher,
		registry:   registry,
		assistant:  assistant,
		faq:        faq,
		limiter:    newRateLimiter(cfg.RateLimit),
		health:     state,
		stats:      make(map[int64]*models.UserStats),
	}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, msg))
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) (tgbot.Message, error) {
	return t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

func (t *Telegram) SendMessage(_ context.Context, message tgbot.MessageConfig) (tgbot.Message, error) {
	return t.bot.Send(message)
}

func (t *Telegram) editText(chatID int64, msgID int, text string) error {
	edit := tgbot.NewEditMessageText(chatID, msgID, text)
	_, err := t.bot.Request(edit)
	return err
}

// Start запускает цикл обновлений.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	t.health.SetReady(true)
	logger.Info("telegram: update loop started as @%s", t.bot.Self.UserName)

	go func() {
		for update := range updates {
			t.handleUpdate(ctx, update)
		}
	}()
}

func (t *Telegram) Stop() {
	t.health.SetReady(false)
	t.bot.StopReceivingUpdates()
}
