package analytics

import (
	"sort"
	"time"

	"deriverse-dashboard/internal/domain"
)

// TrendPoint is one step of the cumulative fee trend.
type TrendPoint struct {
	Label string
	Value float64
}

// BuildFeeTrend accumulates fees per active trading day (days without trades
// are skipped) and returns the running total in chronological order.
func BuildFeeTrend(trades []domain.Trade) []TrendPoint {
	if len(trades) == 0 {
		return []TrendPoint{}
	}

	feeByDay := make(map[string]float64)
	for _, trade := range trades {
		feeByDay[dayKey(trade.ExitAt)] += trade.Fee
	}

	keys := make([]string, 0, len(feeByDay))
	for key := range feeByDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	running := 0.0
	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		running += feeByDay[key]
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		points = append(points, TrendPoint{Label: day.Format("Jan 02"), Value: running})
	}
	return points
}
