package service

import (
	"context"
	"fmt"
	"time"

	"signal_bot/internal/models"
	health "signal_bot/internal/modules/health/service"
	"signal_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
)

// Parser is the text-understanding capability the pipeline depends on.
// Implemented by the ai module; stubbed in tests.
type Parser interface {
	Extract(ctx context.Context, text string) (*models.SignalDraft, error)
	Classify(ctx context.Context, text, instrument string) (*models.SignalUpdate, error)
}

// Dispatcher routes one channel post through extract -> register/update.
type Dispatcher struct {
	parser     Parser
	registry   *Registry
	reconciler *Reconciler
	health     *health.State
}

func NewDispatcher(parser Parser, registry *Registry, reconciler *Reconciler, state *health.State) *Dispatcher {
	return &Dispatcher{
		parser:     parser,
		registry:   registry,
		reconciler: reconciler,
		health:     state,
	}
}

// HandleChannelMessage runs the dispatch policy for one broadcast post:
//
//  1. full parse + unseen instrument  -> register as new
//  2. full parse + active instrument  -> discard draft, classify as update
//  3. no parse + instrument mentioned -> classify, apply unless "other"
//  4. otherwise                       -> drop
//
// Returns the status line for logging; an empty string means the message was
// dropped. Never returns an error: every failure downgrades to a drop.
func (d *Dispatcher) HandleChannelMessage(ctx context.Context, text string) string {
	span, ctx := opentracing.StartSpanFromContext(ctx, "dispatch_channel_message")
	defer span.Finish()

	d.health.TouchMessage(time.Now())

	draft, err := d.parser.Extract(ctx, text)
	if err == nil {
		if existing, active := d.registry.Lookup(draft.Instrument); active {
			// follow-up that happens to look like a fresh signal: never
			// overwrite the tracked record
			span.SetTag("path", "update_full_parse")
			return d.applyUpdate(ctx, existing, text)
		}

		s := models.NewSignal(*draft, time.Now())
		if err := d.registry.Register(ctx, s); err != nil {
			logger.Error("dispatch: register %s: %v", draft.Instrument, err)
			return ""
		}
		span.SetTag("path", "new_signal")
		status := fmt.Sprintf("📊 New signal: %s %s entry %g tp %g sl %g",
			s.Instrument, s.Side, s.Entry, s.TP, s.SL)
		logger.Info("dispatch: %s", status)
		return status
	}

	// no full signal; maybe the post mentions a tracked instrument
	instrument, ok := d.registry.MatchInstrument(text)
	if !ok {
		logger.Info("dispatch: dropped message: %q", text)
		span.SetTag("path", "dropped")
		return ""
	}

	existing, active := d.registry.Lookup(instrument)
	if !active {
		return ""
	}

	span.SetTag("path", "update_fallback")
	upd, err := d.parser.Classify(ctx, text, instrument)
	if err != nil {
		logger.Error("dispatch: classify for %s: %v", instrument, err)
		return ""
	}
	if upd.Action == models.ActionOther {
		// on the fallback path an "other" classification is just noise
		logger.Info("dispatch: unclassified mention of %s: %q", instrument, text)
		return ""
	}

	status := d.reconciler.Apply(ctx, existing, upd)
	logger.Info("dispatch: %s", status)
	return status
}

func (d *Dispatcher) applyUpdate(ctx context.Context, s *models.Signal, text string) string {
	upd, err := d.parser.Classify(ctx, text, s.Instrument)
	if err != nil {
		logger.Error("dispatch: classify for %s: %v", s.Instrument, err)
		return ""
	}

	status := d.reconciler.Apply(ctx, s, upd)
	logger.Info("dispatch: %s", status)
	return status
}
