package service

import (
	"fmt"
	"testing"

	"signal_bot/internal/modules/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSignals struct{ instruments []string }

func (s *stubSignals) ActiveInstruments() []string { return s.instruments }

func TestDetermineComplexity(t *testing.T) {
	tests := []struct {
		query string
		want  complexity
	}{
		{"hi", gptSimple},
		{"Thanks", gptSimple},
		{"ok", gptSimple},
		{"what is a pip?", gptBasic},
		{"EURUSD still active?", gptBasic},
		{"explain why the stop moved", claudeComplex},
		{"should i add to my position here", claudeComplex},
		{"give me your advice on gold", claudeComplex},
		{"tell me about the channel", gptBasic},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, determineComplexity(tt.query))
		})
	}
}

func TestHistoryTrimsToDepth(t *testing.T) {
	cfg := &config.Config{HistoryDepth: 4}
	c := NewClient(cfg, &stubSignals{})

	for i := 0; i < 5; i++ {
		c.remember(7, fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	got := c.recall(7, 10)
	require.Len(t, got, 4)
	assert.Equal(t, "q3", got[0].Content)
	assert.Equal(t, "a4", got[3].Content)

	// recall with a smaller window returns the tail only
	short := c.recall(7, 2)
	require.Len(t, short, 2)
	assert.Equal(t, "q4", short[0].Content)
}

func TestSignalContext(t *testing.T) {
	cfg := &config.Config{}

	c := NewClient(cfg, &stubSignals{})
	assert.Equal(t, "No active signals", c.signalContext())

	c = NewClient(cfg, &stubSignals{instruments: []string{"EURUSD", "XAUUSD"}})
	assert.Equal(t, "Active signals: 2 - EURUSD, XAUUSD", c.signalContext())
}
