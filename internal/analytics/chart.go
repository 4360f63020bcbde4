package analytics

import (
	"fmt"
	"time"

	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/format"
)

// Granularity selects which chart series the builder produces.
type Granularity string

const (
	GranularityDaily   Granularity = "DAILY"
	GranularitySession Granularity = "SESSION"
	GranularityHour    Granularity = "HOD"
)

// Point is the uniform chart point shape shared by all granularities so the
// rendering layer never branches on the selected view.
type Point struct {
	Label              string
	LineValue          float64
	SecondaryLineValue float64
	AreaValue          float64
	FeeValue           float64
}

// Model is the chart block of the dashboard snapshot.
type Model struct {
	Granularity      Granularity
	LineLegend       string
	SecondLineLegend string
	AreaLegend       string
	FeeLegend        string
	Points           []Point
	XLabels          [3]string // first, middle and last point labels
	HeadlineLabel    string
	HeadlineValue    string
	HeadlinePositive bool
}

// SeriesInput bundles the arguments of BuildSeries.
type SeriesInput struct {
	Trades         []domain.Trade
	StartDate      time.Time
	EndDate        time.Time
	StartingEquity float64
	Granularity    Granularity
}

// BuildSeries produces the chart model for the requested granularity.
// Unknown granularities fall back to the daily series.
func BuildSeries(in SeriesInput) Model {
	switch in.Granularity {
	case GranularitySession:
		return buildSessionSeries(in.Trades)
	case GranularityHour:
		return buildHourSeries(in.Trades)
	default:
		return buildDailySeries(in)
	}
}

// buildDailySeries emits one point per calendar day between start and end
// inclusive. Days without trades still appear with zero deltas so the equity
// line stays continuous.
func buildDailySeries(in SeriesInput) Model {
	pnlByDay := make(map[string]float64)
	feeByDay := make(map[string]float64)
	for _, trade := range in.Trades {
		key := dayKey(trade.ExitAt)
		pnlByDay[key] += trade.PNL
		feeByDay[key] += trade.Fee
	}

	equity := in.StartingEquity
	peak := in.StartingEquity
	var points []Point

	start := dayOf(in.StartDate)
	end := dayOf(in.EndDate)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		equity += pnlByDay[key]
		if equity > peak {
			peak = equity
		}
		points = append(points, Point{
			Label:              day.Format("Jan 02"),
			LineValue:          equity - in.StartingEquity,
			SecondaryLineValue: equity,
			AreaValue:          peak - equity,
			FeeValue:           feeByDay[key],
		})
	}

	return Model{
		Granularity:      GranularityDaily,
		LineLegend:       "Cumulative PnL",
		SecondLineLegend: "Account Equity",
		AreaLegend:       "Drawdown Overlay",
		FeeLegend:        "Daily Fees",
		Points:           points,
		XLabels:          xLabels(points),
		HeadlineLabel:    "ATH",
		HeadlineValue:    format.USD(peak, 2),
		HeadlinePositive: true,
	}
}

func buildSessionSeries(trades []domain.Trade) Model {
	pnl := make(map[domain.Session]float64, 3)
	fees := make(map[domain.Session]float64, 3)
	for _, trade := range trades {
		session := domain.SessionForHour(trade.ExitAt.UTC().Hour())
		pnl[session] += trade.PNL
		fees[session] += trade.Fee
	}

	points := make([]Point, 0, len(domain.SessionNames))
	for _, session := range domain.SessionNames {
		points = append(points, Point{
			Label:     string(session),
			LineValue: pnl[session],
			AreaValue: fees[session],
			FeeValue:  fees[session],
		})
	}

	model := Model{
		Granularity: GranularitySession,
		LineLegend:  "Session Net PnL",
		AreaLegend:  "Session Fees",
		Points:      points,
		XLabels:     xLabels(points),
	}
	model.HeadlineLabel = "Best Session"
	applyBestBucketHeadline(&model)
	return model
}

func buildHourSeries(trades []domain.Trade) Model {
	var pnl, fees [24]float64
	for _, trade := range trades {
		hour := trade.ExitAt.UTC().Hour()
		pnl[hour] += trade.PNL
		fees[hour] += trade.Fee
	}

	points := make([]Point, 0, 24)
	for hour := 0; hour < 24; hour++ {
		points = append(points, Point{
			Label:     fmt.Sprintf("%02d:00", hour),
			LineValue: pnl[hour],
			AreaValue: fees[hour],
			FeeValue:  fees[hour],
		})
	}

	model := Model{
		Granularity: GranularityHour,
		LineLegend:  "Hourly Net PnL",
		AreaLegend:  "Hourly Fees",
		Points:      points,
		XLabels:     xLabels(points),
	}
	model.HeadlineLabel = "Best Hour"
	applyBestBucketHeadline(&model)
	return model
}

// applyBestBucketHeadline sets the headline to the highest-PnL bucket, e.g.
// "London (+$1,204.50)".
func applyBestBucketHeadline(model *Model) {
	if len(model.Points) == 0 {
		model.HeadlineValue = "-"
		return
	}
	best := model.Points[0]
	for _, point := range model.Points[1:] {
		if point.LineValue > best.LineValue {
			best = point
		}
	}
	model.HeadlineValue = fmt.Sprintf("%s (%s)", best.Label, format.SignedUSD(best.LineValue, 2))
	model.HeadlinePositive = best.LineValue >= 0
}

func xLabels(points []Point) [3]string {
	if len(points) == 0 {
		return [3]string{"-", "-", "-"}
	}
	return [3]string{
		points[0].Label,
		points[(len(points)-1)/2].Label,
		points[len(points)-1].Label,
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
