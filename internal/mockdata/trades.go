package mockdata

import (
	"fmt"
	"math"
	"sort"
	"time"

	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/format"
)

// PlaceholderAnnotation is the default note stamped on every 13th trade.
const PlaceholderAnnotation = "Scale entry and monitor fee impact before adding size."

const (
	longBias    = 0.58
	marketBias  = 0.74
	minMove     = -0.016
	maxMove     = 0.026
	minDuration = 20
	maxDuration = 540
)

// OpenStatusPolicy controls how many of the most recent trades are marked
// OPEN after a synthesis run. Recency is the only signal; the split carries no
// further business meaning and is deliberately tunable.
type OpenStatusPolicy struct {
	MinOpen int     // floor on the OPEN count
	Share   float64 // fraction of the batch marked OPEN
}

// DefaultOpenStatusPolicy marks max(3, round(0.08*N)) trades OPEN.
var DefaultOpenStatusPolicy = OpenStatusPolicy{MinOpen: 3, Share: 0.08}

// OpenCount returns the number of trades the policy marks OPEN for a batch of n.
func (p OpenStatusPolicy) OpenCount(n int) int {
	count := int(math.Round(p.Share * float64(n)))
	if count < p.MinOpen {
		count = p.MinOpen
	}
	if count > n {
		count = n
	}
	return count
}

// Params configures one synthesis run. Identical params always produce an
// identical dataset.
type Params struct {
	Year        int
	MonthIndex  int // 0-based, matching the dashboard's month picker
	TotalTrades int
	Seed        uint32
	OpenPolicy  OpenStatusPolicy // zero value falls back to DefaultOpenStatusPolicy
}

func (p Params) openPolicy() OpenStatusPolicy {
	if p.OpenPolicy == (OpenStatusPolicy{}) {
		return DefaultOpenStatusPolicy
	}
	return p.OpenPolicy
}

// monthBounds returns the UTC millisecond bounds of the synthesis month:
// first day 00:00:00 through last day 23:59:59.
func monthBounds(year, monthIndex int) (startMs, endMs int64) {
	start := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(monthIndex+2), 0, 23, 59, 59, 0, time.UTC)
	return start.UnixMilli(), end.UnixMilli()
}

// BuildTrades generates the full trade batch for the configured month, sorted
// descending by exit time, with OPEN status assigned to the most recent trades
// per the open-status policy and the placeholder annotation on every 13th row.
func BuildTrades(p Params) []domain.Trade {
	rng := NewSource(p.Seed)
	startMs, endMs := monthBounds(p.Year, p.MonthIndex)

	trades := make([]domain.Trade, 0, p.TotalTrades)
	for i := 0; i < p.TotalTrades; i++ {
		trades = append(trades, buildTrade(rng, p, i, startMs, endMs))
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].ExitAt.After(trades[j].ExitAt)
	})

	openCount := p.openPolicy().OpenCount(len(trades))
	for i := range trades {
		if i < openCount {
			trades[i].Status = domain.TradeStatusOpen
		} else {
			trades[i].Status = domain.TradeStatusClosed
		}
		if i%13 == 0 {
			trades[i].Annotation = PlaceholderAnnotation
		}
	}
	return trades
}

// buildTrade draws one trade. Draw order is part of the determinism contract:
// symbol, side, type, size, entry, move, fee rate, exit time, duration.
func buildTrade(rng *Source, p Params, index int, startMs, endMs int64) domain.Trade {
	profile := Symbols[rng.Intn(len(Symbols))]

	side := domain.SideShort
	if rng.Float64() < longBias {
		side = domain.SideLong
	}
	orderType := domain.OrderTypeLimit
	if rng.Float64() < marketBias {
		orderType = domain.OrderTypeMarket
	}

	size := format.Round(rng.Between(profile.SizeMin, profile.SizeMax), profile.SizeDigits)
	entry := format.Round(rng.Between(profile.EntryMin, profile.EntryMax), 2)
	move := rng.Between(minMove, maxMove)
	exit := format.Round(entry*(1+move), 2)
	notional := entry * size

	gross := (exit - entry) * size
	if side == domain.SideShort {
		gross = (entry - exit) * size
	}
	var feeRate float64
	if orderType == domain.OrderTypeMarket {
		feeRate = rng.Between(0.00055, 0.00085)
	} else {
		feeRate = rng.Between(0.0002, 0.00035)
	}
	fee := format.Round(notional*feeRate, 2)
	pnl := format.Round(gross-fee, 2)

	exitAt := time.UnixMilli(int64(rng.Between(float64(startMs), float64(endMs+1)))).UTC()
	durationMinutes := int(rng.Between(minDuration, maxDuration))
	entryAt := exitAt.Add(-time.Duration(durationMinutes) * time.Minute)

	return domain.Trade{
		ID:              fmt.Sprintf("trade-%d-%d-%d", p.Year, p.MonthIndex+1, index+1),
		Symbol:          profile.Pair,
		BaseAsset:       profile.BaseAsset,
		Side:            side,
		Type:            orderType,
		Size:            size,
		SizeDigits:      profile.SizeDigits,
		Entry:           entry,
		Exit:            exit,
		Notional:        notional,
		PNL:             pnl,
		Fee:             fee,
		DurationMinutes: durationMinutes,
		EntryAt:         entryAt,
		ExitAt:          exitAt,
	}
}
