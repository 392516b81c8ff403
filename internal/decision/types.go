package decision

import (
	"time"

	"stockpilot/internal/analysis/indicator"
	"stockpilot/internal/market"
	"stockpilot/internal/news"
)

// Action is the categorical investment decision. The parser is the only
// producer, which keeps the three-token invariant in one place.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionHold Action = "HOLD"
	ActionSell Action = "SELL"
)

func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionHold, ActionSell:
		return true
	}
	return false
}

// PromptBundle is the immutable composed prompt pair. Never mutated after
// Compose returns it.
type PromptBundle struct {
	System string
	User   string
}

// Input is everything one analysis run feeds into the composer.
type Input struct {
	Ticker     string
	Snapshot   market.Snapshot
	Digest     news.Digest
	Indicators indicator.Report
}

// Recommendation is the validated analysis output. Action is guaranteed to
// be one of the three enumerated values.
type Recommendation struct {
	TraceID     string    `json:"trace_id"`
	Ticker      string    `json:"ticker"`
	Action      Action    `json:"action"`
	Rationale   string    `json:"rationale"`
	GeneratedAt time.Time `json:"generated_at"`
}
