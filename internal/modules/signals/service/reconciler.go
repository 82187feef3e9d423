package service

import (
	"context"
	"fmt"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Reconciler applies classified updates to tracked signals. Each successful
// action mutates exactly the fields it names and appends one audit entry.
type Reconciler struct {
	registry *Registry
	now      func() time.Time
}

func NewReconciler(registry *Registry) *Reconciler {
	return &Reconciler{
		registry: registry,
		now:      time.Now,
	}
}

// Apply mutates the signal per the update and returns a human-readable status
// line for the caller to display or log.
func (rc *Reconciler) Apply(ctx context.Context, s *models.Signal, upd *models.SignalUpdate) string {
	now := rc.now()

	// Value-requiring actions with no usable number must never write into a
	// price field; record the anomaly and leave the signal untouched.
	if upd.Action.RequiresValue() && upd.Value == nil {
		detail := fmt.Sprintf("ignored %s without a numeric value: %s", upd.Action, upd.Description)
		s.AppendUpdate(upd.Action, detail, now)
		rc.registry.Touch(ctx, s)
		logger.Warn("reconciler: %s on %s had no value", upd.Action, s.Instrument)
		return fmt.Sprintf("⚠️ %s: %s received without a price, nothing changed", s.Instrument, upd.Action)
	}

	switch upd.Action {
	case models.ActionBreakeven:
		level := s.Entry
		s.BreakevenLevel = &level
		s.AppendUpdate(upd.Action, fmt.Sprintf("stop moved to breakeven at %g", level), now)
		rc.registry.Touch(ctx, s)
		return fmt.Sprintf("🔒 %s: stop loss moved to breakeven (%g)", s.Instrument, level)

	case models.ActionPartialProfit:
		s.PartialProfits = append(s.PartialProfits, models.PartialProfit{Level: *upd.Value, Timestamp: now})
		s.AppendUpdate(upd.Action, fmt.Sprintf("partial profit at %g", *upd.Value), now)
		rc.registry.Touch(ctx, s)
		return fmt.Sprintf("💰 %s: partial profit taken at %g", s.Instrument, *upd.Value)

	case models.ActionMoveStopLoss:
		old := s.SL
		s.SL = *upd.Value
		s.AppendUpdate(upd.Action, fmt.Sprintf("stop loss %g -> %g", old, *upd.Value), now)
		rc.registry.Touch(ctx, s)
		return fmt.Sprintf("🛡 %s: stop loss moved %g → %g", s.Instrument, old, *upd.Value)

	case models.ActionMoveTakeProfit:
		old := s.TP
		s.TP = *upd.Value
		s.AppendUpdate(upd.Action, fmt.Sprintf("take profit %g -> %g", old, *upd.Value), now)
		rc.registry.Touch(ctx, s)
		return fmt.Sprintf("🎯 %s: take profit moved %g → %g", s.Instrument, old, *upd.Value)

	case models.ActionCloseTrade:
		s.AppendUpdate(upd.Action, "trade closed: "+upd.Description, now)
		if _, err := rc.registry.Close(ctx, s.Instrument, now); err != nil {
			logger.Warn("reconciler: close %s: %v", s.Instrument, err)
			return fmt.Sprintf("⚠️ %s: already closed", s.Instrument)
		}
		return fmt.Sprintf("✅ %s: trade closed", s.Instrument)

	default: // add_position, other: audit only, no field mutation
		s.AppendUpdate(upd.Action, upd.Description, now)
		rc.registry.Touch(ctx, s)
		return fmt.Sprintf("ℹ️ %s update: %s", s.Instrument, upd.Description)
	}
}
