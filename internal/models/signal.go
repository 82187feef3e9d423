package models

import "time"

// Side как в сигналах канала: "BUY"/"SELL".
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type SignalStatus string

const (
	StatusActive SignalStatus = "ACTIVE"
	StatusClosed SignalStatus = "CLOSED"
)

// UpdateAction — what a follow-up channel message wants to change on a tracked signal.
type UpdateAction string

const (
	ActionBreakeven      UpdateAction = "breakeven"
	ActionPartialProfit  UpdateAction = "take_partial_profit"
	ActionMoveStopLoss   UpdateAction = "move_stop_loss"
	ActionMoveTakeProfit UpdateAction = "move_take_profit"
	ActionCloseTrade     UpdateAction = "close_trade"
	ActionAddPosition    UpdateAction = "add_position"
	ActionOther          UpdateAction = "other"
)

// RequiresValue reports whether the action writes a numeric level into the signal.
func (a UpdateAction) RequiresValue() bool {
	switch a {
	case ActionPartialProfit, ActionMoveStopLoss, ActionMoveTakeProfit:
		return true
	}
	return false
}

// PartialProfit — one partial close level, append-only.
type PartialProfit struct {
	Level     float64   `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateEntry — audit record of one applied update.
type UpdateEntry struct {
	Timestamp time.Time    `json:"timestamp"`
	Action    UpdateAction `json:"action"`
	Detail    string       `json:"detail"`
}

// Signal — one tracked trade from the broadcast channel.
//
// Entry/TP/SL ordering is not validated: the channel is trusted as-is,
// a BUY with SL above entry is stored unchanged.
type Signal struct {
	Instrument string       `json:"instrument"`
	Side       Side         `json:"side"`
	Entry      float64      `json:"entry"`
	TP         float64      `json:"tp"`
	SL         float64      `json:"sl"`
	Status     SignalStatus `json:"status"`

	// CurrentProfit is display-only, nothing updates it from a market feed.
	CurrentProfit float64 `json:"current_profit"`

	BreakevenLevel *float64        `json:"breakeven_level,omitempty"`
	PartialProfits []PartialProfit `json:"partial_profits,omitempty"`
	Updates        []UpdateEntry   `json:"updates_history,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewSignal builds an ACTIVE signal from an extractor draft.
func NewSignal(d SignalDraft, now time.Time) *Signal {
	return &Signal{
		Instrument: d.Instrument,
		Side:       d.Side,
		Entry:      d.Entry,
		TP:         d.TP,
		SL:         d.SL,
		Status:     StatusActive,
		Timestamp:  now,
	}
}

// AppendUpdate adds one audit entry. History is append-only.
func (s *Signal) AppendUpdate(action UpdateAction, detail string, now time.Time) {
	s.Updates = append(s.Updates, UpdateEntry{
		Timestamp: now,
		Action:    action,
		Detail:    detail,
	})
}

// SignalDraft — candidate produced by the extractor before registry dispatch.
type SignalDraft struct {
	Instrument string  `json:"instrument"`
	Side       Side    `json:"side"`
	Entry      float64 `json:"entry"`
	TP         float64 `json:"tp"`
	SL         float64 `json:"sl"`
}

// SignalUpdate — classified follow-up for an already tracked instrument.
// Value is nil when the message carries no usable number.
type SignalUpdate struct {
	Action      UpdateAction `json:"action"`
	Value       *float64     `json:"value,omitempty"`
	Description string       `json:"description"`
}
