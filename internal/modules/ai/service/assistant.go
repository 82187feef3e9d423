package service

import (
	"context"
	"fmt"
	"strings"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

const fallbackReply = "I'm having a moment! 😅 Please try again or use /help for quick commands."

type complexity string

const (
	gptSimple     complexity = "gpt-simple"
	gptBasic      complexity = "gpt-basic"
	claudeComplex complexity = "claude-complex"
)

var simpleKeywords = []string{
	"hi", "hello", "thanks", "thank you", "ok", "okay",
	"yes", "no", "good", "great", "cool",
}

var complexIndicators = []string{
	"explain", "analyze", "why", "strategy", "recommend",
	"should i", "what do you think", "advice", "suggestion",
}

// determineComplexity picks the cheapest tier that can handle the query.
func determineComplexity(query string) complexity {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, kw := range simpleKeywords {
		if q == kw {
			return gptSimple
		}
	}

	if len(strings.Fields(query)) < 10 && strings.Contains(query, "?") {
		return gptBasic
	}

	for _, ind := range complexIndicators {
		if strings.Contains(q, ind) {
			return claudeComplex
		}
	}

	return gptBasic
}

// Reply answers a conversational message with tier-routed AI and keeps the
// per-user history for context. Provider failures degrade to a canned reply.
func (c *Client) Reply(ctx context.Context, userID int64, text string) string {
	tier := determineComplexity(text)

	answer, err := c.reply(ctx, userID, text, tier)
	if err != nil {
		logger.Error("assistant (%s): %v", tier, err)
		return fallbackReply
	}

	c.remember(userID, text, answer)
	return answer
}

func (c *Client) reply(ctx context.Context, userID int64, text string, tier complexity) (string, error) {
	sigCtx := c.signalContext()

	switch tier {
	case gptSimple:
		return c.openaiComplete(ctx, []chatMessage{
			{Role: "system", Content: simpleSystemPrompt},
			{Role: "user", Content: text},
		}, 100, 0.7)

	case gptBasic:
		msgs := []chatMessage{{Role: "system", Content: fmt.Sprintf(basicSystemPrompt, sigCtx)}}
		msgs = append(msgs, c.recall(userID, 4)...)
		msgs = append(msgs, chatMessage{Role: "user", Content: text})
		return c.openaiComplete(ctx, msgs, 300, 0.8)

	default: // claudeComplex
		msgs := append(c.recall(userID, 6), chatMessage{Role: "user", Content: text})
		return c.anthropicComplete(ctx, fmt.Sprintf(assistantSystemPrompt, sigCtx), msgs, 1000)
	}
}

func (c *Client) signalContext() string {
	active := c.signals.ActiveInstruments()
	if len(active) == 0 {
		return "No active signals"
	}
	return fmt.Sprintf("Active signals: %d - %s", len(active), strings.Join(active, ", "))
}

func (c *Client) remember(userID int64, userMsg, botMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := append(c.history[userID],
		models.ChatMessage{Role: "user", Content: userMsg},
		models.ChatMessage{Role: "assistant", Content: botMsg},
	)
	if max := c.cfg.HistoryDepth; len(h) > max {
		h = h[len(h)-max:]
	}
	c.history[userID] = h
}

func (c *Client) recall(userID int64, n int) []chatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.history[userID]
	if len(h) > n {
		h = h[len(h)-n:]
	}

	out := make([]chatMessage, 0, len(h))
	for _, m := range h {
		out = append(out, chatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
