package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.InDelta(t, 2.35, Round(2.345, 2), 1e-9)
	assert.InDelta(t, -2.35, Round(-2.345, 2), 1e-9, "rounding is half away from zero")
	assert.InDelta(t, 27123.0, Round(27123.4, 0), 1e-9)
	assert.InDelta(t, 0.123, Round(0.12345, 3), 1e-9)
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$1,234.50", USD(1234.5, 2))
	assert.Equal(t, "$0.00", USD(0, 2))
	assert.Equal(t, "-$5.00", USD(-5, 2))
	assert.Equal(t, "$1,000,000.00", USD(1e6, 2))
	assert.Equal(t, "$999.99", USD(999.99, 2))
}

func TestSignedUSD(t *testing.T) {
	assert.Equal(t, "+$3.50", SignedUSD(3.5, 2))
	assert.Equal(t, "+$0.00", SignedUSD(0, 2))
	assert.Equal(t, "-$120.25", SignedUSD(-120.25, 2))
}

func TestCompactUSD(t *testing.T) {
	assert.Equal(t, "$999.00", CompactUSD(999))
	assert.Equal(t, "$1.25K", CompactUSD(1250))
	assert.Equal(t, "-$12.50K", CompactUSD(-12500))
	assert.Equal(t, "$1.25M", CompactUSD(1_250_000))
	assert.Equal(t, "$2.00B", CompactUSD(2_000_000_000))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0h 0m", Duration(0))
	assert.Equal(t, "0h 45m", Duration(45))
	assert.Equal(t, "2h 5m", Duration(125))
	assert.Equal(t, "7h 30m", Duration(450))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "0.350 BTC", Quantity(0.35, "BTC", 3))
	assert.Equal(t, "1,200 XRP", Quantity(1200, "XRP", 0))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "27,123.40", Price(27123.4))
	assert.Equal(t, "0.52", Price(0.52))
}
