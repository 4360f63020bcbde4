package mockdata

import (
	"sort"
	"time"

	"deriverse-dashboard/internal/domain"
)

// DefaultStartingEquity is the account equity the equity curve starts from.
const DefaultStartingEquity = 35000

// Dataset is the product of one synthesis run: the canonical immutable
// collections every derived view is recomputed from.
type Dataset struct {
	Trades           []domain.Trade
	Orders           []domain.Order
	Transfers        []domain.Transfer
	StartingEquity   float64
	AvailableSymbols []string
	DefaultStart     time.Time // UTC day of the earliest trade exit
	DefaultEnd       time.Time // UTC day of the latest trade exit
}

// Synthesize runs the trade, order and transfer synthesizers for the given
// params. Deterministic: identical params yield a bit-identical dataset.
func Synthesize(p Params) Dataset {
	trades := BuildTrades(p)
	ds := Dataset{
		Trades:         trades,
		Orders:         BuildOrders(trades, p.Seed),
		Transfers:      BuildTransfers(trades, p.Seed),
		StartingEquity: DefaultStartingEquity,
	}

	symbolSet := make(map[string]struct{}, len(Symbols))
	for _, trade := range trades {
		symbolSet[trade.Symbol] = struct{}{}
	}
	ds.AvailableSymbols = make([]string, 0, len(symbolSet))
	for symbol := range symbolSet {
		ds.AvailableSymbols = append(ds.AvailableSymbols, symbol)
	}
	sort.Strings(ds.AvailableSymbols)

	if len(trades) > 0 {
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
		ds.DefaultStart = dayStart(earliest)
		ds.DefaultEnd = dayStart(latest)
	}
	return ds
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
