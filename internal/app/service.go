package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"deriverse-dashboard/internal/analytics"
	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/export"
	"deriverse-dashboard/internal/mockdata"
	"deriverse-dashboard/internal/ports"
	"deriverse-dashboard/internal/scope"
)

// DashboardService owns the synthesized dataset for the lifetime of a
// dashboard session and derives every view from it on demand. All derivation
// is synchronous pure computation; the annotation store is the only external
// collaborator and the service never writes to it on the snapshot path.
type DashboardService struct {
	logger  ports.Logger
	dataset mockdata.Dataset
	notes   ports.AnnotationStore // optional
}

// NewDashboardService creates the service around an already synthesized
// dataset. The annotation store may be nil (no note overrides).
func NewDashboardService(logger ports.Logger, dataset mockdata.Dataset, notes ports.AnnotationStore) (*DashboardService, error) {
	if logger == nil {
		return nil, fmt.Errorf("missing required logger for DashboardService")
	}
	return &DashboardService{logger: logger, dataset: dataset, notes: notes}, nil
}

// Dataset returns the canonical immutable dataset.
func (s *DashboardService) Dataset() mockdata.Dataset {
	return s.dataset
}

// SnapshotRequest carries the user-selected filters and chart view. Date
// inputs use the "2006-01-02" form format; malformed or missing values fall
// back to the dataset's own span.
type SnapshotRequest struct {
	Symbol      string
	TradeStatus domain.TradeStatus
	MarketScope domain.MarketScope
	StartInput  string
	EndInput    string
	Granularity analytics.Granularity
}

func (r SnapshotRequest) filter(start, end *time.Time) scope.Filter {
	return scope.Filter{
		Symbol:      r.Symbol,
		TradeStatus: r.TradeStatus,
		MarketScope: r.MarketScope,
		Start:       start,
		End:         end,
	}
}

// Snapshot builds the dashboard snapshot for the requested scope. Empty
// scoped sets produce the fully zeroed snapshot rather than an error.
func (s *DashboardService) Snapshot(ctx context.Context, req SnapshotRequest) Snapshot {
	start, startOK := parseDateInput(req.StartInput)
	end, endOK := parseDateInput(req.EndInput)
	if (req.StartInput != "" && !startOK) || (req.EndInput != "" && !endOK) {
		s.logger.Warn(ctx, "malformed snapshot date input, falling back to dataset span", map[string]interface{}{
			"start": req.StartInput,
			"end":   req.EndInput,
		})
	}

	trades := scope.Trades(s.dataset.Trades, req.filter(start, end))
	if len(trades) == 0 {
		return s.emptySnapshot(req.Granularity)
	}

	windowStart, windowEnd := s.resolveWindow(trades, start, end)

	summary := analytics.Summarize(trades, s.dataset.StartingEquity)
	snapshot := Snapshot{
		PeriodLabel: periodLabel(windowStart, windowEnd),
		Chart: analytics.BuildSeries(analytics.SeriesInput{
			Trades:         trades,
			StartDate:      windowStart,
			EndDate:        windowEnd,
			StartingEquity: s.dataset.StartingEquity,
			Granularity:    req.Granularity,
		}),
		Analytics:          analytics.Build(trades),
		FeeTrend:           analytics.BuildFeeTrend(trades),
		Stats:              buildStats(summary),
		FeeBreakdown:       FeeBreakdown{Maker: summary.MakerFees, Taker: summary.TakerFees},
		OrderTypeBreakdown: OrderTypeBreakdown{Market: summary.MarketRatio, Limit: summary.LimitRatio},
		Risk: Risk{
			ProfitFactor:       summary.ProfitFactor,
			Expectancy:         summary.Expectancy,
			MaxDrawdownAmount:  summary.MaxDrawdownAmount,
			MaxDrawdownPercent: summary.MaxDrawdownPercent,
			RecoveryDays:       summary.RecoveryDays,
		},
	}

	if start != nil && end != nil {
		snapshot.Deltas = s.buildDeltas(req, summary, windowStart, windowEnd)
	}
	return snapshot
}

// resolveWindow picks the chart window: explicit bounds when supplied, the
// scoped trades' own exit span otherwise. Reversed bounds are swapped.
func (s *DashboardService) resolveWindow(trades []domain.Trade, start, end *time.Time) (time.Time, time.Time) {
	earliest := trades[0].ExitAt
	latest := trades[0].ExitAt
	for _, trade := range trades[1:] {
		if trade.ExitAt.Before(earliest) {
			earliest = trade.ExitAt
		}
		if trade.ExitAt.After(latest) {
			latest = trade.ExitAt
		}
	}

	windowStart := dayOf(earliest)
	windowEnd := dayOf(latest)
	if start != nil {
		windowStart = *start
	}
	if end != nil {
		windowEnd = *end
	}
	if windowStart.After(windowEnd) {
		windowStart, windowEnd = windowEnd, windowStart
	}
	return windowStart, windowEnd
}

// buildDeltas summarizes the equal-length window immediately preceding the
// snapshot window, under the same symbol/status/scope filters, and reports
// the change in headline figures.
func (s *DashboardService) buildDeltas(req SnapshotRequest, current analytics.Summary, windowStart, windowEnd time.Time) *PeriodDeltas {
	span := windowEnd.Sub(windowStart) + 24*time.Hour
	prevStart := windowStart.Add(-span)
	prevEnd := windowStart.AddDate(0, 0, -1)

	prevTrades := scope.Trades(s.dataset.Trades, req.filter(&prevStart, &prevEnd))
	previous := analytics.Summarize(prevTrades, s.dataset.StartingEquity)

	return &PeriodDeltas{
		PNL:     current.TotalPNL - previous.TotalPNL,
		WinRate: current.WinRate - previous.WinRate,
		Volume:  current.TotalVolume - previous.TotalVolume,
		Fees:    current.TotalFees - previous.TotalFees,
	}
}

// emptySnapshot is the defined result for an empty scoped trade set.
func (s *DashboardService) emptySnapshot(granularity analytics.Granularity) Snapshot {
	fallbackDay := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	summary := analytics.Summarize(nil, s.dataset.StartingEquity)
	return Snapshot{
		PeriodLabel: "-",
		Chart: analytics.BuildSeries(analytics.SeriesInput{
			StartDate:      fallbackDay,
			EndDate:        fallbackDay,
			StartingEquity: s.dataset.StartingEquity,
			Granularity:    granularity,
		}),
		Analytics: analytics.Build(nil),
		FeeTrend:  []analytics.TrendPoint{},
		Stats:     buildStats(summary),
	}
}

// ScopedTrades applies the request filters and returns the matching trades.
func (s *DashboardService) ScopedTrades(req SnapshotRequest) []domain.Trade {
	start, _ := parseDateInput(req.StartInput)
	end, _ := parseDateInput(req.EndInput)
	return scope.Trades(s.dataset.Trades, req.filter(start, end))
}

// ExportTradesCSV writes the scoped trades as CSV, applying the annotation
// overlay when a store is configured.
func (s *DashboardService) ExportTradesCSV(ctx context.Context, w io.Writer, req SnapshotRequest) error {
	trades := s.ScopedTrades(req)

	var lookup ports.NoteLookup
	if s.notes != nil {
		overrides, err := s.notes.All(ctx)
		if err != nil {
			s.logger.Warn(ctx, "loading note overrides failed, exporting defaults", map[string]interface{}{"error": err.Error()})
		} else {
			lookup = func(tradeID string) (string, bool) {
				note, ok := overrides[tradeID]
				return note, ok
			}
		}
	}

	if err := export.WriteTrades(w, trades, lookup); err != nil {
		return fmt.Errorf("failed to export trades: %w", err)
	}
	return nil
}

// parseDateInput parses a "2006-01-02" form value. Empty or malformed input
// returns (nil, false) so callers can fall back to a safe default window.
func parseDateInput(value string) (*time.Time, bool) {
	if value == "" {
		return nil, false
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	parsed = parsed.UTC()
	return &parsed, true
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
