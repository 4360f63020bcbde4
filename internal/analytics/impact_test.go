package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriverse-dashboard/internal/domain"
)

func TestTopImpactRanksByMagnitude(t *testing.T) {
	trades := []domain.Trade{
		{ID: "a", Symbol: "BTC / USDT", PNL: 50, Status: domain.TradeStatusClosed},
		{ID: "b", Symbol: "ETH / USDT", PNL: -200, Status: domain.TradeStatusClosed},
		{ID: "c", Symbol: "SOL / USDT", PNL: 120, Status: domain.TradeStatusOpen},
	}

	tiles := TopImpact(trades, false, 0)
	require.Len(t, tiles, 3)
	assert.Equal(t, "b", tiles[0].ID)
	assert.Equal(t, "c", tiles[1].ID)
	assert.Equal(t, "a", tiles[2].ID)

	assert.InDelta(t, 1.0, tiles[0].Ratio, 1e-9)
	assert.InDelta(t, 120.0/200, tiles[1].Ratio, 1e-9)
	assert.Equal(t, "ETH", tiles[0].Label, "label strips the quote leg")
}

func TestTopImpactActiveOnly(t *testing.T) {
	trades := []domain.Trade{
		{ID: "a", Symbol: "BTC / USDT", PNL: 500, Status: domain.TradeStatusClosed},
		{ID: "c", Symbol: "SOL / USDT", PNL: 120, Status: domain.TradeStatusOpen},
	}

	tiles := TopImpact(trades, true, 0)
	require.Len(t, tiles, 1)
	assert.Equal(t, "c", tiles[0].ID)
}

func TestTopImpactLimit(t *testing.T) {
	var trades []domain.Trade
	for i := 0; i < 40; i++ {
		trades = append(trades, domain.Trade{ID: "t", Symbol: "BTC / USDT", PNL: float64(i)})
	}

	assert.Len(t, TopImpact(trades, false, 0), DefaultImpactLimit)
	assert.Len(t, TopImpact(trades, false, 5), 5)
}

func TestTopImpactSmallMagnitudesFloorAtOne(t *testing.T) {
	tiles := TopImpact([]domain.Trade{{ID: "a", Symbol: "BTC / USDT", PNL: 0.25}}, false, 0)
	require.Len(t, tiles, 1)
	assert.InDelta(t, 0.25, tiles[0].Ratio, 1e-9, "ratios divide by at least 1.0")
}

func TestTopImpactEmpty(t *testing.T) {
	assert.Empty(t, TopImpact(nil, false, 0))
}
