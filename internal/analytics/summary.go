// Package analytics reduces an immutable trade collection into the scalar
// statistics, time-bucketed aggregates and chart series the dashboard
// renders. Every function is a total, pure reduction: empty input produces
// zero values, never an error.
package analytics

import (
	"math"
	"sort"
	"time"

	"deriverse-dashboard/internal/domain"
)

const dayMs = 24 * 60 * 60 * 1000

// Summary holds the scalar statistics for a trade collection.
type Summary struct {
	TotalTrades            int
	TotalVolume            float64 // sum of notionals
	TotalFees              float64
	TotalPNL               float64
	NetPNLPercent          float64 // total PnL relative to starting equity
	WinRate                float64 // winners / total, in percent
	LongShortRatio         float64 // longs / max(shorts, 1)
	AverageDurationMinutes float64
	MaxWin                 float64
	MaxLoss                float64
	AverageWin             float64
	AverageLoss            float64 // reported as a positive magnitude
	MakerFees              float64 // Limit fills
	TakerFees              float64 // Market fills
	MarketRatio            float64 // percent of trades placed as Market
	LimitRatio             float64
	ProfitFactor           float64 // gross profit / gross loss, 0 when no losses
	Expectancy             float64 // average net PnL per trade
	MaxDrawdownAmount      float64
	MaxDrawdownPercent     float64 // relative to the peak at the time
	RecoveryDays           int     // longest observed drawdown-to-new-peak span
}

// Summarize reduces trades into a Summary. The drawdown figures come from a
// streaming walk over the trades in exit-time order: running equity starts at
// startingEquity, the walk maintains the running peak, its timestamp and the
// start of the current drawdown period, and a drawdown period closes when
// equity reaches a new peak (or at the final trade if it never recovers).
func Summarize(trades []domain.Trade, startingEquity float64) Summary {
	if len(trades) == 0 {
		return Summary{}
	}

	s := Summary{
		TotalTrades: len(trades),
		MaxWin:      trades[0].PNL,
		MaxLoss:     trades[0].PNL,
	}

	var (
		winners, longs, marketTrades int
		grossProfit, grossLoss       float64
		totalDurationMinutes         int
	)
	for _, trade := range trades {
		s.TotalVolume += trade.Notional
		s.TotalFees += trade.Fee
		s.TotalPNL += trade.PNL
		totalDurationMinutes += trade.DurationMinutes

		if trade.PNL > 0 {
			winners++
			grossProfit += trade.PNL
		} else if trade.PNL < 0 {
			grossLoss += -trade.PNL
		}
		if trade.Side == domain.SideLong {
			longs++
		}
		if trade.Type == domain.OrderTypeMarket {
			marketTrades++
		} else {
			s.MakerFees += trade.Fee
		}
		if trade.PNL > s.MaxWin {
			s.MaxWin = trade.PNL
		}
		if trade.PNL < s.MaxLoss {
			s.MaxLoss = trade.PNL
		}
	}
	s.TakerFees = s.TotalFees - s.MakerFees

	total := float64(s.TotalTrades)
	shorts := s.TotalTrades - longs

	s.WinRate = float64(winners) / total * 100
	s.LongShortRatio = float64(longs) / math.Max(float64(shorts), 1)
	s.AverageDurationMinutes = float64(totalDurationMinutes) / total
	s.MarketRatio = float64(marketTrades) / total * 100
	s.LimitRatio = float64(s.TotalTrades-marketTrades) / total * 100
	if winners > 0 {
		s.AverageWin = grossProfit / float64(winners)
	}
	if loserCount := countLosers(trades); loserCount > 0 {
		s.AverageLoss = grossLoss / float64(loserCount)
	}
	if grossLoss > 0 {
		s.ProfitFactor = grossProfit / grossLoss
	}
	s.Expectancy = s.TotalPNL / total
	if startingEquity != 0 {
		s.NetPNLPercent = s.TotalPNL / startingEquity * 100
	}

	s.MaxDrawdownAmount, s.MaxDrawdownPercent, s.RecoveryDays = drawdownWalk(trades, startingEquity)
	return s
}

func countLosers(trades []domain.Trade) int {
	n := 0
	for _, trade := range trades {
		if trade.PNL < 0 {
			n++
		}
	}
	return n
}

// drawdownWalk performs the chronological equity walk described on Summarize.
func drawdownWalk(trades []domain.Trade, startingEquity float64) (maxAmount, maxPercent float64, recoveryDays int) {
	ordered := append([]domain.Trade(nil), trades...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitAt.Before(ordered[j].ExitAt)
	})

	equity := startingEquity
	peak := startingEquity
	peakAt := ordered[0].ExitAt
	var drawdownStart *time.Time

	for _, trade := range ordered {
		equity += trade.PNL

		if equity >= peak {
			peak = equity
			peakAt = trade.ExitAt

			if drawdownStart != nil {
				days := spanDays(*drawdownStart, trade.ExitAt)
				if days > recoveryDays {
					recoveryDays = days
				}
				drawdownStart = nil
			}
			continue
		}

		drawdown := peak - equity
		if drawdownStart == nil {
			start := peakAt
			drawdownStart = &start
		}
		if drawdown > maxAmount {
			maxAmount = drawdown
			if peak > 0 {
				maxPercent = drawdown / peak * 100
			} else {
				maxPercent = 0
			}
		}
	}

	// A drawdown still open at the end of the walk counts up to the last trade.
	if drawdownStart != nil {
		days := spanDays(*drawdownStart, ordered[len(ordered)-1].ExitAt)
		if days > recoveryDays {
			recoveryDays = days
		}
	}
	return maxAmount, maxPercent, recoveryDays
}

func spanDays(from, to time.Time) int {
	days := int(math.Round(float64(to.UnixMilli()-from.UnixMilli()) / dayMs))
	if days < 1 {
		return 1
	}
	return days
}
