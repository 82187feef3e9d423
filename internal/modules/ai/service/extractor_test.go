package service

import (
	"os"
	"testing"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *models.SignalDraft
	}{
		{
			name: "plain json",
			raw:  `{"instrument":"EURUSD","side":"BUY","entry":1.1,"tp":1.11,"sl":1.095}`,
			want: &models.SignalDraft{Instrument: "EURUSD", Side: models.SideBuy, Entry: 1.1, TP: 1.11, SL: 1.095},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"instrument\":\"gbpaud\",\"side\":\"sell\",\"entry\":2.01,\"tp\":2.03,\"sl\":2.0}\n```",
			want: &models.SignalDraft{Instrument: "GBPAUD", Side: models.SideSell, Entry: 2.01, TP: 2.03, SL: 2.0},
		},
		{
			name: "long normalizes to buy",
			raw:  `{"instrument":"DEX900","side":"long","entry":3100,"tp":3173,"sl":3031}`,
			want: &models.SignalDraft{Instrument: "DEX900", Side: models.SideBuy, Entry: 3100, TP: 3173, SL: 3031},
		},
		{
			name: "empty object means no signal",
			raw:  `{}`,
		},
		{
			name: "missing sl",
			raw:  `{"instrument":"EURUSD","side":"BUY","entry":1.1,"tp":1.11}`,
		},
		{
			name: "non-numeric entry",
			raw:  `{"instrument":"EURUSD","side":"BUY","entry":"market","tp":1.11,"sl":1.095}`,
		},
		{
			name: "unknown side",
			raw:  `{"instrument":"EURUSD","side":"HEDGE","entry":1.1,"tp":1.11,"sl":1.095}`,
		},
		{
			name: "not json at all",
			raw:  "sorry, I cannot find a signal here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDraft(tt.raw)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}

func TestParseUpdate(t *testing.T) {
	val := 1.098

	tests := []struct {
		name string
		raw  string
		want models.SignalUpdate
	}{
		{
			name: "move stop loss with value",
			raw:  `{"action":"move_stop_loss","value":1.098,"description":"tighten the stop"}`,
			want: models.SignalUpdate{Action: models.ActionMoveStopLoss, Value: &val, Description: "tighten the stop"},
		},
		{
			name: "breakeven without value",
			raw:  `{"action":"breakeven","value":null,"description":"move to be"}`,
			want: models.SignalUpdate{Action: models.ActionBreakeven, Description: "move to be"},
		},
		{
			name: "unknown action resolves to other",
			raw:  `{"action":"hedge_everything","description":"??"}`,
			want: models.SignalUpdate{Action: models.ActionOther, Description: "??"},
		},
		{
			name: "garbage resolves to other with raw description",
			raw:  "the trader seems happy",
			want: models.SignalUpdate{Action: models.ActionOther, Description: "the trader seems happy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseUpdate(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Action, got.Action)
			assert.Equal(t, tt.want.Description, got.Description)
			if tt.want.Value == nil {
				assert.Nil(t, got.Value)
			} else {
				require.NotNil(t, got.Value)
				assert.Equal(t, *tt.want.Value, *got.Value)
			}
		})
	}
}
