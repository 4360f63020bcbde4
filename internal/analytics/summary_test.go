package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriverse-dashboard/internal/domain"
)

func exitOn(d int) time.Time {
	return time.Date(2023, time.October, d, 12, 0, 0, 0, time.UTC)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil, 35000))
	assert.Equal(t, Summary{}, Summarize([]domain.Trade{}, 35000))
}

func TestSummarizeTotals(t *testing.T) {
	trades := []domain.Trade{
		{PNL: 100, Fee: 1, Notional: 1000, DurationMinutes: 60, Side: domain.SideLong, Type: domain.OrderTypeMarket, Status: domain.TradeStatusClosed, ExitAt: exitOn(1)},
		{PNL: -50, Fee: 2, Notional: 2000, DurationMinutes: 120, Side: domain.SideShort, Type: domain.OrderTypeLimit, Status: domain.TradeStatusClosed, ExitAt: exitOn(2)},
		{PNL: 30, Fee: 3, Notional: 1500, DurationMinutes: 90, Side: domain.SideLong, Type: domain.OrderTypeMarket, Status: domain.TradeStatusClosed, ExitAt: exitOn(3)},
	}

	s := Summarize(trades, 1000)

	assert.Equal(t, 3, s.TotalTrades)
	assert.InDelta(t, 4500, s.TotalVolume, 1e-9)
	assert.InDelta(t, 6, s.TotalFees, 1e-9)
	assert.InDelta(t, 80, s.TotalPNL, 1e-9)
	assert.InDelta(t, 8, s.NetPNLPercent, 1e-9)
	assert.InDelta(t, 100.0/3*2, s.WinRate, 1e-9)
	assert.InDelta(t, 2, s.LongShortRatio, 1e-9)
	assert.InDelta(t, 90, s.AverageDurationMinutes, 1e-9)
	assert.InDelta(t, 100, s.MaxWin, 1e-9)
	assert.InDelta(t, -50, s.MaxLoss, 1e-9)
	assert.InDelta(t, 65, s.AverageWin, 1e-9)
	assert.InDelta(t, 50, s.AverageLoss, 1e-9, "average loss reports a positive magnitude")
	assert.InDelta(t, 2, s.MakerFees, 1e-9)
	assert.InDelta(t, 4, s.TakerFees, 1e-9)
	assert.InDelta(t, 100.0/3*2, s.MarketRatio, 1e-9)
	assert.InDelta(t, 100.0/3, s.LimitRatio, 1e-9)
	assert.InDelta(t, 130.0/50, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 80.0/3, s.Expectancy, 1e-9)
}

func TestSummarizeAllWinners(t *testing.T) {
	trades := []domain.Trade{
		{PNL: 10, ExitAt: exitOn(1), Side: domain.SideLong, Type: domain.OrderTypeMarket},
		{PNL: 20, ExitAt: exitOn(2), Side: domain.SideLong, Type: domain.OrderTypeMarket},
	}

	s := Summarize(trades, 1000)
	assert.InDelta(t, 100, s.WinRate, 1e-9)
	assert.Zero(t, s.ProfitFactor, "no losses means profit factor is reported as zero")
	assert.Zero(t, s.AverageLoss)
	assert.Zero(t, s.MaxDrawdownAmount)
	assert.Zero(t, s.RecoveryDays)
	// Every trade is long, the short denominator floors at 1.
	assert.InDelta(t, 2, s.LongShortRatio, 1e-9)
}

func TestDrawdownWalkUnrecovered(t *testing.T) {
	// Equity walk from 1000: 1100 (peak, day 1), 1050, 1080 — never recovers.
	trades := []domain.Trade{
		{PNL: 100, ExitAt: exitOn(1)},
		{PNL: -50, ExitAt: exitOn(2)},
		{PNL: 30, ExitAt: exitOn(3)},
	}

	s := Summarize(trades, 1000)
	assert.InDelta(t, 50, s.MaxDrawdownAmount, 1e-9)
	assert.InDelta(t, 50.0/1100*100, s.MaxDrawdownPercent, 1e-9)
	// The open drawdown closes at the final trade: day 1 to day 3.
	assert.Equal(t, 2, s.RecoveryDays)
}

func TestDrawdownWalkRecovered(t *testing.T) {
	// 1100 (peak, day 1), 1050, 1130 (new peak, day 3): recovery spans two days.
	trades := []domain.Trade{
		{PNL: 100, ExitAt: exitOn(1)},
		{PNL: -50, ExitAt: exitOn(2)},
		{PNL: 80, ExitAt: exitOn(3)},
	}

	s := Summarize(trades, 1000)
	assert.InDelta(t, 50, s.MaxDrawdownAmount, 1e-9)
	assert.Equal(t, 2, s.RecoveryDays)
}

func TestDrawdownWalkTracksDeepestValley(t *testing.T) {
	trades := []domain.Trade{
		{PNL: 200, ExitAt: exitOn(1)},  // 1200, peak
		{PNL: -100, ExitAt: exitOn(2)}, // 1100
		{PNL: -150, ExitAt: exitOn(3)}, // 950, deepest: 250 below peak
		{PNL: 300, ExitAt: exitOn(5)},  // 1250, new peak: recovery day1 -> day5
		{PNL: -20, ExitAt: exitOn(6)},  // shallow second drawdown
	}

	s := Summarize(trades, 1000)
	assert.InDelta(t, 250, s.MaxDrawdownAmount, 1e-9)
	assert.InDelta(t, 250.0/1200*100, s.MaxDrawdownPercent, 1e-9)
	assert.Equal(t, 4, s.RecoveryDays)
}

func TestDrawdownWalkSameDayFloorsAtOne(t *testing.T) {
	base := time.Date(2023, time.October, 4, 9, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		{PNL: 50, ExitAt: base},
		{PNL: -10, ExitAt: base.Add(time.Hour)},
	}

	s := Summarize(trades, 1000)
	assert.Equal(t, 1, s.RecoveryDays, "sub-day spans round up to one day")
}

func TestDrawdownWalkIgnoresInputOrder(t *testing.T) {
	shuffled := []domain.Trade{
		{PNL: 30, ExitAt: exitOn(3)},
		{PNL: 100, ExitAt: exitOn(1)},
		{PNL: -50, ExitAt: exitOn(2)},
	}

	s := Summarize(shuffled, 1000)
	require.InDelta(t, 50, s.MaxDrawdownAmount, 1e-9, "the walk must sort by exit time first")
}
