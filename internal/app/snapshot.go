package app

import (
	"fmt"
	"strconv"
	"time"

	"deriverse-dashboard/internal/analytics"
	"deriverse-dashboard/internal/format"
)

// Stats are the formatted headline statistics of the snapshot. The raw
// NetPNLValue travels alongside so the renderer can pick a color without
// re-parsing the string.
type Stats struct {
	NetPNL          string
	WinRate         string
	Volume          string
	Fees            string
	LongShortRatio  string
	TotalTrades     string
	AverageDuration string
	MaxWin          string
	MaxLoss         string
	AverageWin      string
	AverageLoss     string
	NetPNLValue     float64
}

// FeeBreakdown splits fees into maker (Limit) and taker (Market) totals.
type FeeBreakdown struct {
	Maker float64
	Taker float64
}

// OrderTypeBreakdown holds the Market/Limit share of trades, in percent.
type OrderTypeBreakdown struct {
	Market float64
	Limit  float64
}

// Risk is the risk-metrics block of the snapshot.
type Risk struct {
	ProfitFactor       float64
	Expectancy         float64
	MaxDrawdownAmount  float64
	MaxDrawdownPercent float64
	RecoveryDays       int
}

// PeriodDeltas compares the snapshot window against the equal-length window
// immediately preceding it.
type PeriodDeltas struct {
	PNL     float64
	WinRate float64
	Volume  float64
	Fees    float64
}

// Snapshot is the aggregate dashboard payload: everything the rendering layer
// reads, freshly derived on every build and never mutated in place.
type Snapshot struct {
	PeriodLabel        string
	Chart              analytics.Model
	Analytics          analytics.Bundle
	FeeTrend           []analytics.TrendPoint
	Stats              Stats
	FeeBreakdown       FeeBreakdown
	OrderTypeBreakdown OrderTypeBreakdown
	Risk               Risk
	Deltas             *PeriodDeltas // nil when the window is unbounded
}

func buildStats(summary analytics.Summary) Stats {
	sign := ""
	if summary.NetPNLPercent >= 0 {
		sign = "+"
	}
	return Stats{
		NetPNL:          fmt.Sprintf("%s%.1f%%", sign, summary.NetPNLPercent),
		WinRate:         fmt.Sprintf("%.1f%%", summary.WinRate),
		Volume:          format.CompactUSD(summary.TotalVolume),
		Fees:            format.USD(summary.TotalFees, 2),
		LongShortRatio:  strconv.FormatFloat(summary.LongShortRatio, 'f', 2, 64),
		TotalTrades:     strconv.Itoa(summary.TotalTrades),
		AverageDuration: format.Duration(summary.AverageDurationMinutes),
		MaxWin:          format.CompactUSD(summary.MaxWin),
		MaxLoss:         "-" + format.CompactUSD(absFloat(summary.MaxLoss)),
		AverageWin:      format.CompactUSD(summary.AverageWin),
		AverageLoss:     format.CompactUSD(summary.AverageLoss),
		NetPNLValue:     summary.NetPNLPercent,
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// periodLabel renders "Oct 1, 2023 - Oct 31, 2023".
func periodLabel(start, end time.Time) string {
	const layout = "Jan 2, 2006"
	return start.UTC().Format(layout) + " - " + end.UTC().Format(layout)
}
