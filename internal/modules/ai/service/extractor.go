package service

import (
	"context"
	"fmt"
	"strings"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// ErrNoSignal means the message does not contain a complete signal.
// Not a transport failure: the caller just moves on.
var ErrNoSignal = errors.New("no signal found")

// Extract asks the model for the five signal fields. Any malformed or
// incomplete answer degrades to ErrNoSignal, never to a hard error.
func (c *Client) Extract(ctx context.Context, text string) (*models.SignalDraft, error) {
	prompt := fmt.Sprintf(extractPrompt, text)

	raw, err := c.anthropicComplete(ctx, "", []chatMessage{{Role: "user", Content: prompt}}, 300)
	if err != nil {
		logger.Error("extract: anthropic call failed: %v", err)
		return nil, ErrNoSignal
	}

	draft, ok := parseDraft(raw)
	if !ok {
		logger.Warn("extract: unusable model output: %q (message: %q)", raw, text)
		return nil, ErrNoSignal
	}

	return draft, nil
}

// parseDraft interprets the raw model output as a SignalDraft.
// Pointer fields distinguish "missing" from a literal zero.
func parseDraft(raw string) (*models.SignalDraft, bool) {
	cleaned := stripFences(raw)

	var payload struct {
		Instrument string   `json:"instrument"`
		Side       string   `json:"side"`
		Entry      *float64 `json:"entry"`
		TP         *float64 `json:"tp"`
		SL         *float64 `json:"sl"`
	}
	if err := sonic.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, false
	}

	if payload.Instrument == "" || payload.Entry == nil || payload.TP == nil || payload.SL == nil {
		return nil, false
	}

	side, ok := normalizeSide(payload.Side)
	if !ok {
		return nil, false
	}

	return &models.SignalDraft{
		Instrument: strings.ToUpper(strings.TrimSpace(payload.Instrument)),
		Side:       side,
		Entry:      *payload.Entry,
		TP:         *payload.TP,
		SL:         *payload.SL,
	}, true
}

// stripFences drops markdown code fences the model wraps around JSON
// despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func normalizeSide(s string) (models.Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return models.SideBuy, true
	case "SELL", "SHORT":
		return models.SideSell, true
	}
	return "", false
}
