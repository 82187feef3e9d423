package service

import (
	"context"
	"testing"
	"time"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func newTestReconciler(t *testing.T) (*Reconciler, *Registry, *models.Signal) {
	t.Helper()

	r := NewRegistry(NewNoopStore())
	s := newTestSignal("EURUSD")
	require.NoError(t, r.Register(context.Background(), s))

	rc := NewReconciler(r)
	rc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return rc, r, s
}

func TestReconcilerBreakeven(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	status := rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action: models.ActionBreakeven,
	})

	require.NotNil(t, s.BreakevenLevel)
	assert.Equal(t, s.Entry, *s.BreakevenLevel)
	assert.Equal(t, models.StatusActive, s.Status)
	require.Len(t, s.Updates, 1)
	assert.Equal(t, models.ActionBreakeven, s.Updates[0].Action)
	assert.Contains(t, status, "breakeven")
}

func TestReconcilerPartialProfit(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action: models.ActionPartialProfit,
		Value:  fptr(1.1050),
	})

	require.Len(t, s.PartialProfits, 1)
	assert.Equal(t, 1.1050, s.PartialProfits[0].Level)
	assert.Len(t, s.Updates, 1)
}

func TestReconcilerMoveStopLoss(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	status := rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action: models.ActionMoveStopLoss,
		Value:  fptr(1.0980),
	})

	assert.Equal(t, 1.0980, s.SL)
	require.Len(t, s.Updates, 1)
	// old value survives in the audit trail
	assert.Contains(t, s.Updates[0].Detail, "1.095")
	assert.Contains(t, status, "EURUSD")
}

func TestReconcilerMoveTakeProfit(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action: models.ActionMoveTakeProfit,
		Value:  fptr(1.1200),
	})

	assert.Equal(t, 1.1200, s.TP)
	assert.Len(t, s.Updates, 1)
}

func TestReconcilerMissingValueIsNoop(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	status := rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action:      models.ActionMoveStopLoss,
		Description: "move the stop",
	})

	// no field mutation, but the anomaly is on record
	assert.Equal(t, 1.0950, s.SL)
	require.Len(t, s.Updates, 1)
	assert.Contains(t, s.Updates[0].Detail, "without a numeric value")
	assert.Contains(t, status, "nothing changed")
}

func TestReconcilerCloseTrade(t *testing.T) {
	rc, r, s := newTestReconciler(t)

	status := rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action:      models.ActionCloseTrade,
		Description: "tp hit",
	})
	assert.Contains(t, status, "closed")

	_, active := r.Lookup("EURUSD")
	assert.False(t, active)
	require.Len(t, r.Closed(), 1)

	// second close is a no-op: record no longer active
	status = rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action: models.ActionCloseTrade,
	})
	assert.Contains(t, status, "already closed")
	assert.Len(t, r.Closed(), 1)
}

func TestReconcilerOtherIsAuditOnly(t *testing.T) {
	rc, _, s := newTestReconciler(t)
	entry, tp, sl := s.Entry, s.TP, s.SL

	rc.Apply(context.Background(), s, &models.SignalUpdate{
		Action:      models.ActionOther,
		Description: "price is consolidating, hold",
	})

	assert.Equal(t, entry, s.Entry)
	assert.Equal(t, tp, s.TP)
	assert.Equal(t, sl, s.SL)
	require.Len(t, s.Updates, 1)
	assert.Equal(t, "price is consolidating, hold", s.Updates[0].Detail)
}

func TestReconcilerAuditAppendOnly(t *testing.T) {
	rc, _, s := newTestReconciler(t)

	updates := []*models.SignalUpdate{
		{Action: models.ActionBreakeven},
		{Action: models.ActionPartialProfit, Value: fptr(1.1050)},
		{Action: models.ActionMoveStopLoss, Value: fptr(1.1000)},
		{Action: models.ActionOther, Description: "hold"},
	}

	for i, upd := range updates {
		first := ""
		if len(s.Updates) > 0 {
			first = s.Updates[0].Detail
		}

		rc.Apply(context.Background(), s, upd)

		assert.Len(t, s.Updates, i+1)
		if first != "" {
			assert.Equal(t, first, s.Updates[0].Detail)
		}
	}
}
