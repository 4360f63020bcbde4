package domain

import "time"

// Trade represents a single synthesized trade. Trades are generated once per
// dashboard session and never mutated afterwards; every derived structure
// (summary, analytics, chart series) is recomputed from the immutable set.
type Trade struct {
	ID              string      // Unique identifier, e.g. "trade-2023-10-17"
	Symbol          string      // Pair name, e.g. "BTC / USDT"
	BaseAsset       string      // Base asset of the pair, e.g. "BTC"
	Side            Side        // LONG or SHORT
	Type            OrderType   // Market or Limit
	Size            float64     // Quantity, rounded to SizeDigits
	SizeDigits      int         // Display/rounding precision for Size
	Entry           float64     // Entry price
	Exit            float64     // Exit price
	Notional        float64     // Entry price x size
	PNL             float64     // Realized PnL net of fee
	Fee             float64     // Fee charged against the notional
	DurationMinutes int         // Holding time in minutes
	EntryAt         time.Time   // Entry timestamp (UTC)
	ExitAt          time.Time   // Exit timestamp (UTC)
	Status          TradeStatus // OPEN or CLOSED
	Annotation      string      // Default free-text note, may be empty
}

// GrossPNL returns the directional PnL before fees:
// (exit-entry)*size for LONG, (entry-exit)*size for SHORT.
func (t *Trade) GrossPNL() float64 {
	if t.Side == SideLong {
		return (t.Exit - t.Entry) * t.Size
	}
	return (t.Entry - t.Exit) * t.Size
}

// MarketScope classifies the trade as PERP or SPOT by its base asset.
func (t *Trade) MarketScope() MarketScope {
	return ScopeForBaseAsset(t.BaseAsset)
}
