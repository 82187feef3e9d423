package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Store is the persistence boundary for signal snapshots. Registry calls it
// best-effort: a store failure never fails the pipeline.
type Store interface {
	SaveActive(ctx context.Context, s *models.Signal) error
	DeleteActive(ctx context.Context, instrument string) error
	SaveClosed(ctx context.Context, s models.Signal) error
	LoadActive(ctx context.Context) ([]*models.Signal, error)
}

// Registry owns the instrument -> active signal mapping and the closed
// history. All mutation goes through its methods; the mutex keeps the
// lookup-then-mutate path safe under concurrent telegram updates.
type Registry struct {
	mu     sync.Mutex
	active map[string]*models.Signal
	closed []models.Signal

	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{
		active: make(map[string]*models.Signal),
		store:  store,
	}
}

// Restore reloads active signals from the store after a restart.
func (r *Registry) Restore(ctx context.Context) error {
	signals, err := r.store.LoadActive(ctx)
	if err != nil {
		return fmt.Errorf("registry restore: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range signals {
		r.active[s.Instrument] = s
	}
	if len(signals) > 0 {
		logger.Info("registry: restored %d active signals", len(signals))
	}
	return nil
}

func (r *Registry) Lookup(instrument string) (*models.Signal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.active[instrument]
	return s, ok
}

// Register tracks a new ACTIVE signal. A second registration for an already
// active instrument is refused so the caller routes it to the update path.
func (r *Registry) Register(ctx context.Context, s *models.Signal) error {
	r.mu.Lock()
	if _, exists := r.active[s.Instrument]; exists {
		r.mu.Unlock()
		return fmt.Errorf("signal for %s is already active", s.Instrument)
	}
	r.active[s.Instrument] = s
	r.mu.Unlock()

	r.persistActive(ctx, s)
	return nil
}

// Close moves an active signal to the closed history. Terminal: the record
// never comes back.
func (r *Registry) Close(ctx context.Context, instrument string, now time.Time) (*models.Signal, error) {
	r.mu.Lock()
	s, ok := r.active[instrument]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("no active signal for %s", instrument)
	}
	delete(r.active, instrument)
	s.Status = models.StatusClosed
	r.closed = append(r.closed, *s)
	r.mu.Unlock()

	if err := r.store.DeleteActive(ctx, instrument); err != nil {
		logger.Error("registry: delete active %s: %v", instrument, err)
	}
	if err := r.store.SaveClosed(ctx, *s); err != nil {
		logger.Error("registry: save closed %s: %v", instrument, err)
	}
	return s, nil
}

// Touch re-persists an active signal after the reconciler mutated it.
func (r *Registry) Touch(ctx context.Context, s *models.Signal) {
	r.persistActive(ctx, s)
}

func (r *Registry) Active() []*models.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Signal, 0, len(r.active))
	for _, s := range r.active {
		out = append(out, s)
	}
	return out
}

func (r *Registry) Closed() []models.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Signal, len(r.closed))
	copy(out, r.closed)
	return out
}

func (r *Registry) ActiveInstruments() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.active))
	for k := range r.active {
		out = append(out, k)
	}
	return out
}

// MatchInstrument finds the first active instrument mentioned anywhere in the
// text, case-insensitive. Follow-up posts rarely repeat the full signal but
// almost always repeat the pair name.
func (r *Registry) MatchInstrument(text string) (string, bool) {
	lower := strings.ToLower(text)

	r.mu.Lock()
	defer r.mu.Unlock()
	for instrument := range r.active {
		if strings.Contains(lower, strings.ToLower(instrument)) {
			return instrument, true
		}
	}
	return "", false
}

func (r *Registry) persistActive(ctx context.Context, s *models.Signal) {
	if err := r.store.SaveActive(ctx, s); err != nil {
		logger.Error("registry: save active %s: %v", s.Instrument, err)
	}
}
