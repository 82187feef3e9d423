package service

import (
	"context"
	"strings"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	// 1) Посты из сигнального канала -> пайплайн
	if post := update.ChannelPost; post != nil {
		if post.Chat.ID == t.cfg.Telegram.SignalChannelID && post.Text != "" {
			t.dispatcher.HandleChannelMessage(ctx, post.Text)
		}
		return
	}

	// 2) Обычные сообщения
	if msg := update.Message; msg != nil {
		chatID := msg.Chat.ID

		if msg.IsCommand() {
			switch msg.Command() {
			case "start":
				t.handleStart(ctx, msg)
			case "help":
				_, _ = t.Send(ctx, chatID, helpText(t.bot.Self.UserName))
			case "signals":
				t.handleSignals(ctx, chatID)
			case "closed":
				t.handleClosed(ctx, chatID)
			case "performance":
				_, _ = t.Send(ctx, chatID, formatPerformance(t.registry.Active(), t.registry.Closed()))
			case "stats":
				t.handleStats(ctx, msg)
			default:
				_, _ = t.Send(ctx, chatID, "Unknown command, try /help")
			}
			return
		}

		if msg.Voice != nil {
			_, _ = t.Send(ctx, chatID,
				"🎤 Voice message received!\n\nVoice transcription is coming in a future update. "+
					"For now, please type your question and I'll respond instantly! 😊")
			return
		}

		if msg.Text != "" {
			t.handleTextMessage(ctx, msg)
		}
		return
	}

	// 3) Inline-кнопки
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.Message.Chat == nil {
			return
		}
		t.handleCallback(ctx, cb.Message.Chat.ID, cb)
		return
	}
}

func (t *Telegram) handleStart(ctx context.Context, msg *tgbot.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	t.mu.Lock()
	if _, ok := t.stats[userID]; !ok {
		t.stats[userID] = &models.UserStats{UserID: userID, Joined: time.Now()}
	}
	t.mu.Unlock()

	kb := tgbot.NewInlineKeyboardMarkup(
		tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData("📊 Active Signals", "view_signals"),
		),
		tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData("📚 Trading Guide", "quick_guide"),
			tgbot.NewInlineKeyboardButtonData("💡 How to Use", "how_to_use"),
		),
	)

	out := tgbot.NewMessage(chatID, welcomeText(msg.From.FirstName, t.bot.Self.UserName))
	out.ReplyMarkup = kb
	_, _ = t.SendMessage(ctx, out)
}

func (t *Telegram) handleSignals(ctx context.Context, chatID int64) {
	active := t.registry.Active()
	if len(active) == 0 {
		kb := tgbot.NewInlineKeyboardMarkup(
			tgbot.NewInlineKeyboardRow(
				tgbot.NewInlineKeyboardButtonData("🔄 Refresh", "view_signals"),
				tgbot.NewInlineKeyboardButtonData("📈 Past Performance", "performance"),
			),
		)
		out := tgbot.NewMessage(chatID, noSignalsText)
		out.ReplyMarkup = kb
		_, _ = t.SendMessage(ctx, out)
		return
	}

	kb := tgbot.NewInlineKeyboardMarkup(
		tgbot.NewInlineKeyboardRow(
			tgbot.NewInlineKeyboardButtonData("🔄 Refresh", "view_signals"),
			tgbot.NewInlineKeyboardButtonData("📊 Performance Stats", "performance"),
		),
	)
	out := tgbot.NewMessage(chatID, formatActiveSignals(active, t.registry.Closed()))
	out.ParseMode = "Markdown"
	out.ReplyMarkup = kb
	_, _ = t.SendMessage(ctx, out)
}

func (t *Telegram) handleClosed(ctx context.Context, chatID int64) {
	closed := t.registry.Closed()
	if len(closed) == 0 {
		_, _ = t.Send(ctx, chatID, "📭 No closed signals yet.")
		return
	}
	out := tgbot.NewMessage(chatID, formatClosedSignals(closed))
	out.ParseMode = "Markdown"
	_, _ = t.SendMessage(ctx, out)
}

func (t *Telegram) handleStats(ctx context.Context, msg *tgbot.Message) {
	userID := msg.From.ID

	t.mu.Lock()
	st, ok := t.stats[userID]
	if !ok {
		st = &models.UserStats{UserID: userID, Joined: time.Now()}
		t.stats[userID] = st
	}
	snapshot := *st
	t.mu.Unlock()

	text := formatStats(&snapshot, len(t.registry.Active()), len(t.registry.Closed()))
	_, _ = t.Send(ctx, msg.Chat.ID, text)
}

// handleTextMessage — личка/группы: FAQ сначала, дальше AI.
func (t *Telegram) handleTextMessage(ctx context.Context, msg *tgbot.Message) {
	if !t.shouldRespond(msg) {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID
	text := strings.TrimSpace(strings.ReplaceAll(msg.Text, "@"+t.bot.Self.UserName, ""))

	if !t.limiter.Allow(userID) {
		_, _ = t.Send(ctx, chatID, "⏳ Please wait a moment before sending another message!")
		return
	}

	t.countQuery(userID)

	// FAQ отвечает мгновенно и бесплатно
	if answer, ok := t.faq.Search(text); ok {
		_, _ = t.Send(ctx, chatID, answer)
		return
	}

	if _, err := t.bot.Request(tgbot.NewChatAction(chatID, tgbot.ChatTyping)); err != nil {
		logger.Warn("telegram: typing action: %v", err)
	}

	reply := t.assistant.Reply(ctx, userID, text)
	_, _ = t.Send(ctx, chatID, reply)
}

// shouldRespond: в личке всегда, в группах только по упоминанию или реплаю.
func (t *Telegram) shouldRespond(msg *tgbot.Message) bool {
	if msg.Chat.IsPrivate() {
		return true
	}

	if strings.Contains(msg.Text, "@"+t.bot.Self.UserName) {
		return true
	}

	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil &&
		msg.ReplyToMessage.From.ID == t.bot.Self.ID {
		return true
	}

	return false
}

func (t *Telegram) countQuery(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.stats[userID]; ok {
		st.Queries++
	} else {
		t.stats[userID] = &models.UserStats{UserID: userID, Joined: time.Now(), Queries: 1}
	}
}

func (t *Telegram) handleCallback(ctx context.Context, chatID int64, cb *tgbot.CallbackQuery) {
	// убираем "часики" на кнопке
	_, _ = t.bot.Request(tgbot.NewCallback(cb.ID, ""))

	switch cb.Data {
	case "view_signals":
		active := t.registry.Active()
		if len(active) == 0 {
			_ = t.editText(chatID, cb.Message.MessageID,
				"📭 No Active Signals\n\nAll signals are currently closed.\nNew signals will appear here automatically! ⚡")
			return
		}
		_ = t.editText(chatID, cb.Message.MessageID, formatSignalsShort(active))

	case "performance":
		_ = t.editText(chatID, cb.Message.MessageID, formatPerformance(t.registry.Active(), t.registry.Closed()))

	case "quick_guide":
		_ = t.editText(chatID, cb.Message.MessageID, quickGuideText(t.bot.Self.UserName))

	case "how_to_use":
		_ = t.editText(chatID, cb.Message.MessageID, howToUseText)
	}
}
