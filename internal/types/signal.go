package types

import "time"

// Action is the per-bar trading decision produced by the signal synthesizer.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// SignalRow is the per-bar result of combining indicator category signals
// and candlestick pattern scores. Rows are derived data: they are recomputed
// on every pipeline invocation and carry no behavior.
type SignalRow struct {
	Time time.Time `yaml:"time" json:"time" csv:"time"`
	// TrendScore, MomentumScore, VolumeScore and PatternScore are each
	// -1, 0 or +1.
	TrendScore    int `yaml:"trend_score" json:"trend_score" csv:"trend_score"`
	MomentumScore int `yaml:"momentum_score" json:"momentum_score" csv:"momentum_score"`
	VolumeScore   int `yaml:"volume_score" json:"volume_score" csv:"volume_score"`
	PatternScore  int `yaml:"pattern_score" json:"pattern_score" csv:"pattern_score"`
	// CombinedScore is the weighted sum of the category scores, in [-1, 1].
	CombinedScore float64 `yaml:"combined_score" json:"combined_score" csv:"combined_score"`
	Action        Action  `yaml:"action" json:"action" csv:"action"`
	// Complete is false while any required indicator input is still inside
	// its warm-up window. Categories with undefined inputs score zero on
	// such rows instead of evaluating against a bogus value.
	Complete bool `yaml:"complete" json:"complete" csv:"complete"`
}
