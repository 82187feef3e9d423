package service

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/bytedance/sonic"
)

// Classify maps a follow-up message about a known instrument to an update
// action. Ambiguous or malformed answers resolve to ActionOther, transport
// failures surface as errors.
func (c *Client) Classify(ctx context.Context, text, instrument string) (*models.SignalUpdate, error) {
	prompt := fmt.Sprintf(classifyPrompt, instrument, text)

	raw, err := c.anthropicComplete(ctx, "", []chatMessage{{Role: "user", Content: prompt}}, 300)
	if err != nil {
		return nil, err
	}

	return parseUpdate(raw), nil
}

func parseUpdate(raw string) *models.SignalUpdate {
	cleaned := stripFences(raw)

	var payload struct {
		Action      string   `json:"action"`
		Value       *float64 `json:"value"`
		Description string   `json:"description"`
	}
	if err := sonic.Unmarshal([]byte(cleaned), &payload); err != nil {
		logger.Warn("classify: unusable model output: %q", raw)
		return &models.SignalUpdate{Action: models.ActionOther, Description: cleaned}
	}

	action := models.UpdateAction(payload.Action)
	switch action {
	case models.ActionBreakeven, models.ActionPartialProfit, models.ActionMoveStopLoss,
		models.ActionMoveTakeProfit, models.ActionCloseTrade, models.ActionAddPosition:
	default:
		action = models.ActionOther
	}

	return &models.SignalUpdate{
		Action:      action,
		Value:       payload.Value,
		Description: payload.Description,
	}
}
