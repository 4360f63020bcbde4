package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"deriverse-dashboard/internal/domain"
)

// DefaultImpactLimit caps the impact mosaic at its grid capacity.
const DefaultImpactLimit = 24

// Tile is one entry of the PnL-impact mosaic: a trade ranked by absolute PnL
// with its magnitude ratio against the cohort maximum.
type Tile struct {
	ID     string
	Label  string // base asset shorthand, e.g. "BTC"
	Symbol string
	Side   domain.Side
	Status domain.TradeStatus
	PNL    float64
	Fee    float64
	ExitAt time.Time
	Ratio  float64 // |pnl| / max |pnl| of the ranked cohort
}

// TopImpact ranks trades by absolute PnL and returns up to limit tiles.
// With activeOnly set, only OPEN trades enter the ranking.
func TopImpact(trades []domain.Trade, activeOnly bool, limit int) []Tile {
	if limit <= 0 {
		limit = DefaultImpactLimit
	}

	ranked := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if activeOnly && trade.Status != domain.TradeStatusOpen {
			continue
		}
		ranked = append(ranked, trade)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].PNL) > math.Abs(ranked[j].PNL)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	maxMagnitude := 1.0
	for _, trade := range ranked {
		if magnitude := math.Abs(trade.PNL); magnitude > maxMagnitude {
			maxMagnitude = magnitude
		}
	}

	tiles := make([]Tile, 0, len(ranked))
	for _, trade := range ranked {
		label := trade.Symbol
		if i := strings.IndexByte(label, '/'); i >= 0 {
			label = strings.TrimSpace(label[:i])
		}
		tiles = append(tiles, Tile{
			ID:     trade.ID,
			Label:  label,
			Symbol: trade.Symbol,
			Side:   trade.Side,
			Status: trade.Status,
			PNL:    trade.PNL,
			Fee:    trade.Fee,
			ExitAt: trade.ExitAt,
			Ratio:  math.Abs(trade.PNL) / maxMagnitude,
		})
	}
	return tiles
}
