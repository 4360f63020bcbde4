package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriverse-dashboard/internal/analytics"
	"deriverse-dashboard/internal/mockdata"
	"deriverse-dashboard/internal/scope"
)

// --- Mocks ---

// mockLogger records log calls for assertions.
type mockLogger struct {
	mu       sync.Mutex
	warnMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMsgs = append(m.warnMsgs, msg)
}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func (m *mockLogger) warnCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.warnMsgs)
}

// memNotes is an in-memory AnnotationStore.
type memNotes struct {
	notes map[string]string
}

func newMemNotes() *memNotes { return &memNotes{notes: map[string]string{}} }

func (m *memNotes) Get(ctx context.Context, tradeID string) (string, bool, error) {
	note, ok := m.notes[tradeID]
	return note, ok, nil
}
func (m *memNotes) Set(ctx context.Context, tradeID, note string) error {
	m.notes[tradeID] = note
	return nil
}
func (m *memNotes) Delete(ctx context.Context, tradeID string) error {
	delete(m.notes, tradeID)
	return nil
}
func (m *memNotes) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.notes))
	for k, v := range m.notes {
		out[k] = v
	}
	return out, nil
}

// --- Setup ---

func testDataset() mockdata.Dataset {
	return mockdata.Synthesize(mockdata.Params{Year: 2023, MonthIndex: 9, TotalTrades: 30, Seed: 7})
}

func newTestService(t *testing.T, logger *mockLogger) *DashboardService {
	t.Helper()
	service, err := NewDashboardService(logger, testDataset(), nil)
	require.NoError(t, err)
	return service
}

// --- Tests ---

func TestNewDashboardServiceRequiresLogger(t *testing.T) {
	_, err := NewDashboardService(nil, testDataset(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger")
}

func TestSnapshotUnbounded(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	snapshot := service.Snapshot(context.Background(), SnapshotRequest{})

	assert.Equal(t, "30", snapshot.Stats.TotalTrades)
	assert.NotEqual(t, "-", snapshot.PeriodLabel)
	assert.Contains(t, snapshot.PeriodLabel, "2023")
	assert.Nil(t, snapshot.Deltas, "an unbounded window has no previous period")
	assert.Equal(t, analytics.GranularityDaily, snapshot.Chart.Granularity)
	assert.NotEmpty(t, snapshot.Chart.Points)
	assert.Len(t, snapshot.Analytics.Sessions, 3)
	assert.NotEmpty(t, snapshot.FeeTrend)
	assert.InDelta(t, snapshot.FeeBreakdown.Maker+snapshot.FeeBreakdown.Taker,
		snapshot.FeeTrend[len(snapshot.FeeTrend)-1].Value, 1e-6)
}

func TestSnapshotBoundedWindowProducesDeltas(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	snapshot := service.Snapshot(context.Background(), SnapshotRequest{
		StartInput: "2023-10-01",
		EndInput:   "2023-10-31",
	})

	assert.Equal(t, "Oct 1, 2023 - Oct 31, 2023", snapshot.PeriodLabel)
	require.NotNil(t, snapshot.Deltas)

	// The preceding window (September) holds no trades, so the PnL delta
	// equals the whole window's PnL.
	total := 0.0
	for _, trade := range service.Dataset().Trades {
		total += trade.PNL
	}
	assert.InDelta(t, total, snapshot.Deltas.PNL, 1e-6)
	assert.Len(t, snapshot.Chart.Points, 31)
}

func TestSnapshotReversedDatesAreSwapped(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	snapshot := service.Snapshot(context.Background(), SnapshotRequest{
		StartInput: "2023-10-31",
		EndInput:   "2023-10-01",
	})
	assert.Equal(t, "Oct 1, 2023 - Oct 31, 2023", snapshot.PeriodLabel)
}

func TestSnapshotMalformedDateFallsBack(t *testing.T) {
	logger := &mockLogger{}
	service := newTestService(t, logger)

	fallback := service.Snapshot(context.Background(), SnapshotRequest{StartInput: "oops"})
	unbounded := service.Snapshot(context.Background(), SnapshotRequest{})

	assert.Equal(t, unbounded.PeriodLabel, fallback.PeriodLabel)
	assert.Equal(t, 1, logger.warnCount())
}

func TestSnapshotEmptyScope(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	snapshot := service.Snapshot(context.Background(), SnapshotRequest{Symbol: "DOGE / USDT"})

	assert.Equal(t, "-", snapshot.PeriodLabel)
	assert.Equal(t, "0", snapshot.Stats.TotalTrades)
	assert.Equal(t, "+0.0%", snapshot.Stats.NetPNL)
	assert.Len(t, snapshot.Chart.Points, 1, "the empty snapshot still charts a single fallback day")
	assert.Empty(t, snapshot.FeeTrend)
	assert.Nil(t, snapshot.Deltas)
}

func TestSnapshotSessionGranularity(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	snapshot := service.Snapshot(context.Background(), SnapshotRequest{Granularity: analytics.GranularitySession})
	assert.Equal(t, analytics.GranularitySession, snapshot.Chart.Granularity)
	assert.Len(t, snapshot.Chart.Points, 3)
}

func TestScopedTrades(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	symbol := service.Dataset().AvailableSymbols[0]
	trades := service.ScopedTrades(SnapshotRequest{Symbol: symbol})
	require.NotEmpty(t, trades)
	for _, trade := range trades {
		assert.Equal(t, symbol, trade.Symbol)
	}

	assert.Len(t, service.ScopedTrades(SnapshotRequest{Symbol: scope.SymbolAll}), 30)
}

func TestExportTradesCSV(t *testing.T) {
	service := newTestService(t, &mockLogger{})

	var buf bytes.Buffer
	err := service.ExportTradesCSV(context.Background(), &buf, SnapshotRequest{})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31, "header plus one row per trade")
	assert.Len(t, records[0], 16)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "note", records[0][15])
}

func TestExportTradesCSVAppliesNoteOverlay(t *testing.T) {
	logger := &mockLogger{}
	dataset := testDataset()
	notes := newMemNotes()
	target := dataset.Trades[0].ID
	require.NoError(t, notes.Set(context.Background(), target, "sized up after the retest"))

	service, err := NewDashboardService(logger, dataset, notes)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.ExportTradesCSV(context.Background(), &buf, SnapshotRequest{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	found := false
	for _, record := range records[1:] {
		if record[0] == target {
			found = true
			assert.Equal(t, "sized up after the retest", record[15])
		}
	}
	assert.True(t, found)
}

func TestBuildStats(t *testing.T) {
	stats := buildStats(analytics.Summary{
		TotalTrades:            5,
		NetPNLPercent:          12.34,
		WinRate:                60,
		TotalVolume:            1_250_000,
		TotalFees:              321.5,
		LongShortRatio:         1.5,
		AverageDurationMinutes: 125,
		MaxWin:                 900,
		MaxLoss:                -450,
		AverageWin:             300,
		AverageLoss:            150,
	})

	assert.Equal(t, "+12.3%", stats.NetPNL)
	assert.Equal(t, "60.0%", stats.WinRate)
	assert.Equal(t, "$1.25M", stats.Volume)
	assert.Equal(t, "$321.50", stats.Fees)
	assert.Equal(t, "1.50", stats.LongShortRatio)
	assert.Equal(t, "5", stats.TotalTrades)
	assert.Equal(t, "2h 5m", stats.AverageDuration)
	assert.Equal(t, "$900.00", stats.MaxWin)
	assert.Equal(t, "-$450.00", stats.MaxLoss)
	assert.InDelta(t, 12.34, stats.NetPNLValue, 1e-9)
}

func TestBuildStatsZeroSummary(t *testing.T) {
	stats := buildStats(analytics.Summary{})
	assert.Equal(t, "+0.0%", stats.NetPNL)
	assert.Equal(t, "-$0.00", stats.MaxLoss)
	assert.Equal(t, "0h 0m", stats.AverageDuration)
}
