// Package format holds the deterministic display helpers shared by the
// snapshot, export and rendering layers. All functions are pure functions of
// their numeric input.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round rounds a value to the given number of decimal digits, half away from
// zero. The synthesizer uses it everywhere a price, size or PnL is fixed to
// its documented precision.
func Round(value float64, digits int) float64 {
	out, _ := decimal.NewFromFloat(value).Round(int32(digits)).Float64()
	return out
}

// USD formats a value as a dollar amount with grouped thousands, e.g.
// "$1,234.56". Negative values render as "-$1,234.56".
func USD(value float64, digits int) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	fixed := decimal.NewFromFloat(math.Abs(value)).StringFixed(int32(digits))
	return sign + "$" + groupThousands(fixed)
}

// SignedUSD formats a value with an explicit sign, e.g. "+$120.00".
func SignedUSD(value float64, digits int) string {
	if value < 0 {
		return "-" + USD(math.Abs(value), digits)
	}
	return "+" + USD(value, digits)
}

// CompactUSD abbreviates large dollar amounts: "$1.23K", "$4.56M", "$7.89B".
func CompactUSD(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.2fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.2fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.2fK", sign, abs/1_000)
	}
	return USD(value, 2)
}

// Duration formats a minute count as "7h 30m".
func Duration(minutes float64) string {
	hours := int(minutes / 60)
	remainder := int(math.Round(math.Mod(minutes, 60)))
	return fmt.Sprintf("%dh %dm", hours, remainder)
}

// Quantity formats a trade size with its base asset, e.g. "0.350 BTC".
func Quantity(size float64, baseAsset string, digits int) string {
	fixed := decimal.NewFromFloat(size).StringFixed(int32(digits))
	return groupThousands(fixed) + " " + baseAsset
}

// Price formats a price with two decimals and grouped thousands.
func Price(value float64) string {
	return groupThousands(decimal.NewFromFloat(value).StringFixed(2))
}

// groupThousands inserts comma separators into the integer part of a
// non-negative fixed-point decimal string.
func groupThousands(fixed string) string {
	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}
	if len(intPart) <= 3 {
		return intPart + fracPart
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + fracPart
}
