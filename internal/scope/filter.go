// Package scope narrows the synthesized collections by the user-selected
// dashboard filters. Filtering is pure: inputs are never mutated, empty input
// yields empty output, and applying the same filter twice is a no-op.
package scope

import (
	"time"

	"deriverse-dashboard/internal/domain"
)

// SymbolAll is the sentinel that passes every symbol.
const SymbolAll = "ALL"

const dayMs = 24 * 60 * 60 * 1000

// Filter describes the narrowing applied to a collection. Zero-valued fields
// pass everything; Start and End are inclusive calendar-day bounds applied to
// the record's reference timestamp (trade exit, order creation, transfer time).
type Filter struct {
	Symbol         string
	TradeStatus    domain.TradeStatus
	OrderStatus    domain.OrderStatus
	TransferStatus domain.TransferStatus
	MarketScope    domain.MarketScope
	Start          *time.Time
	End            *time.Time
}

// inWindow reports whether ts falls inside [Start, End + 1day - 1ms].
func (f Filter) inWindow(ts time.Time) bool {
	ms := ts.UnixMilli()
	if f.Start != nil && ms < f.Start.UnixMilli() {
		return false
	}
	if f.End != nil && ms > f.End.UnixMilli()+dayMs-1 {
		return false
	}
	return true
}

func (f Filter) passesSymbol(symbol string) bool {
	return f.Symbol == "" || f.Symbol == SymbolAll || f.Symbol == symbol
}

// Trades returns the trades matching the filter, in input order.
func Trades(trades []domain.Trade, f Filter) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	for _, trade := range trades {
		if !f.passesSymbol(trade.Symbol) {
			continue
		}
		if f.TradeStatus != "" && trade.Status != f.TradeStatus {
			continue
		}
		if f.MarketScope != "" && f.MarketScope != domain.MarketScopeAll && trade.MarketScope() != f.MarketScope {
			continue
		}
		if !f.inWindow(trade.ExitAt) {
			continue
		}
		out = append(out, trade)
	}
	return out
}

// Orders returns the orders matching the filter, in input order.
func Orders(orders []domain.Order, f Filter) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if !f.passesSymbol(order.Symbol) {
			continue
		}
		if f.OrderStatus != "" && order.Status != f.OrderStatus {
			continue
		}
		if !f.inWindow(order.CreatedAt) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// Transfers returns the transfers matching the filter, in input order.
func Transfers(transfers []domain.Transfer, f Filter) []domain.Transfer {
	out := make([]domain.Transfer, 0, len(transfers))
	for _, transfer := range transfers {
		if f.TransferStatus != "" && transfer.Status != f.TransferStatus {
			continue
		}
		if !f.inWindow(transfer.OccurredAt) {
			continue
		}
		out = append(out, transfer)
	}
	return out
}
