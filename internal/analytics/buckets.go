package analytics

import (
	"math"
	"sort"

	"deriverse-dashboard/internal/domain"
)

// WeekdayLabels are the day-of-week labels in Sunday-first order.
var WeekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// HeatmapSlotLabels are the 4-hour slot labels of the trade-frequency heatmap.
var HeatmapSlotLabels = []string{"00-03", "04-07", "08-11", "12-15", "16-19", "20-23"}

const heatmapSlots = 6

// SessionStat accumulates count and PnL for one trading session.
type SessionStat struct {
	Name   domain.Session
	Trades int
	PNL    float64
}

// DayStat accumulates count and PnL for one day of week.
type DayStat struct {
	Label  string
	Trades int
	PNL    float64
}

// Heatmap is the 7x6 (day-of-week x 4-hour slot) grid of trade counts.
type Heatmap struct {
	DayLabels  []string
	SlotLabels []string
	Values     [7][heatmapSlots]int
	MaxValue   int // floored at 1 so renderers can divide by it
}

// RunType tags a streak as winning or losing. A trade with pnl >= 0 is a win.
type RunType string

const (
	RunWin  RunType = "WIN"
	RunLoss RunType = "LOSS"
)

// Run is a maximal consecutive sequence of closed trades sharing a win/loss sign.
type Run struct {
	Type   RunType
	Length int
	NetPNL float64
}

// Outcome is one closed trade's result in the recent-outcomes window.
type Outcome struct {
	Win bool
	PNL float64
}

// Streaks describes win/loss runs over the closed trades in scope.
type Streaks struct {
	Current Run       // the run still accumulating at the end of the walk
	MaxWin  Run       // longest win run; ties broken by larger absolute net PnL
	MaxLoss Run       // longest loss run; same tie-break
	Recent  []Outcome // last 8 closed trades, chronological order
}

// TypePerformance aggregates trade results per order type.
type TypePerformance struct {
	Type       domain.OrderType
	Trades     int
	WinRate    float64
	TotalPNL   float64
	AveragePNL float64
	AverageFee float64
}

// Bundle is the analytics block of the dashboard snapshot.
type Bundle struct {
	Sessions        []SessionStat
	Weekdays        []DayStat
	BestDay         DayStat
	Streaks         Streaks
	Heatmap         Heatmap
	TypePerformance []TypePerformance
}

// recentOutcomeWindow is the number of closed trades shown in the outcome strip.
const recentOutcomeWindow = 8

// Build computes the session, weekday, heatmap, streak and order-type
// aggregates for the scoped trade set. Bucketing keys off the exit timestamp.
func Build(trades []domain.Trade) Bundle {
	bundle := Bundle{
		Sessions: []SessionStat{
			{Name: domain.SessionAsia},
			{Name: domain.SessionLondon},
			{Name: domain.SessionNewYork},
		},
		Weekdays: make([]DayStat, 7),
		Heatmap: Heatmap{
			DayLabels:  WeekdayLabels,
			SlotLabels: HeatmapSlotLabels,
			MaxValue:   1,
		},
	}
	for i := range bundle.Weekdays {
		bundle.Weekdays[i].Label = WeekdayLabels[i]
	}

	for _, trade := range trades {
		hour := trade.ExitAt.UTC().Hour()
		day := int(trade.ExitAt.UTC().Weekday())
		slot := hour / 4

		for i := range bundle.Sessions {
			if bundle.Sessions[i].Name == domain.SessionForHour(hour) {
				bundle.Sessions[i].Trades++
				bundle.Sessions[i].PNL += trade.PNL
			}
		}
		bundle.Weekdays[day].Trades++
		bundle.Weekdays[day].PNL += trade.PNL

		bundle.Heatmap.Values[day][slot]++
		if bundle.Heatmap.Values[day][slot] > bundle.Heatmap.MaxValue {
			bundle.Heatmap.MaxValue = bundle.Heatmap.Values[day][slot]
		}
	}

	bundle.BestDay = bundle.Weekdays[0]
	for _, day := range bundle.Weekdays[1:] {
		if day.PNL > bundle.BestDay.PNL {
			bundle.BestDay = day
		}
	}

	bundle.Streaks = buildStreaks(trades)
	bundle.TypePerformance = buildTypePerformance(trades)
	return bundle
}

// HeatCellOpacity maps a heatmap cell value to its rendering opacity:
// clamp(0.15 + value/max*0.75, 0.1, 0.9), with a low floor when the grid is empty.
func HeatCellOpacity(value, maxValue int) float64 {
	if maxValue <= 0 {
		return 0.08
	}
	opacity := 0.15 + float64(value)/float64(maxValue)*0.75
	return math.Max(0.1, math.Min(0.9, opacity))
}

// buildStreaks walks the CLOSED trades in exit-time order and tracks win/loss
// runs. The sum of all run lengths equals the closed-trade count.
func buildStreaks(trades []domain.Trade) Streaks {
	closed := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if trade.Status == domain.TradeStatusClosed {
			closed = append(closed, trade)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].ExitAt.Before(closed[j].ExitAt)
	})

	streaks := Streaks{Recent: []Outcome{}}
	var current Run
	for _, trade := range closed {
		runType := RunLoss
		if trade.PNL >= 0 {
			runType = RunWin
		}
		if current.Length > 0 && current.Type != runType {
			streaks.record(current)
			current = Run{}
		}
		current.Type = runType
		current.Length++
		current.NetPNL += trade.PNL
	}
	if current.Length > 0 {
		streaks.record(current)
	}
	streaks.Current = current

	start := len(closed) - recentOutcomeWindow
	if start < 0 {
		start = 0
	}
	for _, trade := range closed[start:] {
		streaks.Recent = append(streaks.Recent, Outcome{Win: trade.PNL >= 0, PNL: trade.PNL})
	}
	return streaks
}

// record folds a finished run into the per-type maximum, breaking length ties
// by the larger absolute net PnL.
func (s *Streaks) record(run Run) {
	target := &s.MaxWin
	if run.Type == RunLoss {
		target = &s.MaxLoss
	}
	if run.Length > target.Length ||
		(run.Length == target.Length && math.Abs(run.NetPNL) > math.Abs(target.NetPNL)) {
		*target = run
	}
}

func buildTypePerformance(trades []domain.Trade) []TypePerformance {
	out := make([]TypePerformance, 0, 2)
	for _, orderType := range []domain.OrderType{domain.OrderTypeMarket, domain.OrderTypeLimit} {
		perf := TypePerformance{Type: orderType}
		wins := 0
		totalFees := 0.0
		for _, trade := range trades {
			if trade.Type != orderType {
				continue
			}
			perf.Trades++
			perf.TotalPNL += trade.PNL
			totalFees += trade.Fee
			if trade.PNL > 0 {
				wins++
			}
		}
		if perf.Trades > 0 {
			perf.WinRate = float64(wins) / float64(perf.Trades) * 100
			perf.AveragePNL = perf.TotalPNL / float64(perf.Trades)
			perf.AverageFee = totalFees / float64(perf.Trades)
		}
		out = append(out, perf)
	}
	return out
}
