package service

import (
	"strings"
	"testing"
	"time"

	"signal_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func closedSignal(instrument string, partials int, breakeven bool) models.Signal {
	s := models.Signal{
		Instrument: instrument,
		Side:       models.SideBuy,
		Entry:      1.1,
		TP:         1.12,
		SL:         1.09,
		Status:     models.StatusClosed,
		Timestamp:  time.Now(),
	}
	for i := 0; i < partials; i++ {
		s.PartialProfits = append(s.PartialProfits, models.PartialProfit{Level: 1.105, Timestamp: time.Now()})
	}
	if breakeven {
		be := s.Entry
		s.BreakevenLevel = &be
	}
	return s
}

func TestFormatPerformance(t *testing.T) {
	got := formatPerformance(nil, nil)
	assert.Contains(t, got, "No closed signals yet")

	closed := []models.Signal{
		closedSignal("EURUSD", 2, false), // win: took partials
		closedSignal("XAUUSD", 0, true),  // win: reached breakeven
		closedSignal("GBPJPY", 0, false), // loss
	}
	got = formatPerformance(nil, closed)
	assert.Contains(t, got, "Wins: 2")
	assert.Contains(t, got, "Losses: 1")
	assert.Contains(t, got, "Win Rate: 66.7%")
}

func TestFormatClosedSignalsShowsNewestFirst(t *testing.T) {
	closed := []models.Signal{
		closedSignal("EURUSD", 0, false),
		closedSignal("XAUUSD", 1, false),
	}

	got := formatClosedSignals(closed)
	assert.Less(t, strings.Index(got, "XAUUSD"), strings.Index(got, "EURUSD"))
	assert.Contains(t, got, "(1 partials)")
	assert.Contains(t, got, "Total closed: 2")
}

func TestFormatActiveSignalsIncludesBreakevenLine(t *testing.T) {
	be := 1.1
	active := []*models.Signal{{
		Instrument:     "EURUSD",
		Side:           models.SideBuy,
		Entry:          1.1,
		TP:             1.12,
		SL:             1.09,
		Status:         models.StatusActive,
		BreakevenLevel: &be,
		Timestamp:      time.Now(),
	}}

	got := formatActiveSignals(active, nil)
	assert.Contains(t, got, "Breakeven: `1.1`")
	assert.Contains(t, got, "Total Active: 1")
}
