package service

import (
	"context"
	"os"
	"testing"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func newTestSignal(instrument string) *models.Signal {
	return models.NewSignal(models.SignalDraft{
		Instrument: instrument,
		Side:       models.SideBuy,
		Entry:      1.1000,
		TP:         1.1100,
		SL:         1.0950,
	}, time.Now())
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewNoopStore())

	s := newTestSignal("EURUSD")
	require.NoError(t, r.Register(ctx, s))

	got, ok := r.Lookup("EURUSD")
	require.True(t, ok)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, 1.1000, got.Entry)

	_, ok = r.Lookup("GBPUSD")
	assert.False(t, ok)
}

func TestRegistryRefusesDuplicateActive(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewNoopStore())

	original := newTestSignal("EURUSD")
	require.NoError(t, r.Register(ctx, original))

	second := newTestSignal("EURUSD")
	second.Entry = 2.0000
	err := r.Register(ctx, second)
	require.Error(t, err)

	// original record untouched
	got, ok := r.Lookup("EURUSD")
	require.True(t, ok)
	assert.Equal(t, 1.1000, got.Entry)
}

func TestRegistryCloseIsTerminal(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewNoopStore())

	require.NoError(t, r.Register(ctx, newTestSignal("EURUSD")))

	closed, err := r.Close(ctx, "EURUSD", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, closed.Status)

	_, ok := r.Lookup("EURUSD")
	assert.False(t, ok)

	history := r.Closed()
	require.Len(t, history, 1)
	assert.Equal(t, "EURUSD", history[0].Instrument)
	assert.Equal(t, models.StatusClosed, history[0].Status)

	// a second close finds nothing active
	_, err = r.Close(ctx, "EURUSD", time.Now())
	require.Error(t, err)
	assert.Len(t, r.Closed(), 1)
}

func TestRegistryMatchInstrumentCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(NewNoopStore())
	require.NoError(t, r.Register(ctx, newTestSignal("EURUSD")))

	instrument, ok := r.MatchInstrument("guys, eurusd is looking great, move sl to entry")
	require.True(t, ok)
	assert.Equal(t, "EURUSD", instrument)

	_, ok = r.MatchInstrument("nothing about any tracked pair here")
	assert.False(t, ok)
}

type memStore struct {
	NoopStore
	active []*models.Signal
}

func (m *memStore) LoadActive(context.Context) ([]*models.Signal, error) {
	return m.active, nil
}

func TestRegistryRestore(t *testing.T) {
	store := &memStore{active: []*models.Signal{newTestSignal("GBPAUD")}}
	r := NewRegistry(store)

	require.NoError(t, r.Restore(context.Background()))

	got, ok := r.Lookup("GBPAUD")
	require.True(t, ok)
	assert.Equal(t, models.SideBuy, got.Side)
}
