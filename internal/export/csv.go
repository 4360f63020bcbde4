// Package export serializes scoped row collections for download. It consumes
// whatever the scope filter produced plus the caller-owned annotation overlay.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/ports"
)

// WriteTrades writes one CSV row per trade. When a note lookup is supplied,
// its value replaces the trade's default annotation.
func WriteTrades(w io.Writer, trades []domain.Trade, notes ports.NoteLookup) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"id", "symbol", "base_asset", "side", "type", "status",
		"size", "entry", "exit", "notional", "pnl", "fee",
		"duration_minutes", "entry_at", "exit_at", "note",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, trade := range trades {
		note := trade.Annotation
		if notes != nil {
			if override, ok := notes(trade.ID); ok {
				note = override
			}
		}
		record := []string{
			trade.ID,
			trade.Symbol,
			trade.BaseAsset,
			string(trade.Side),
			string(trade.Type),
			string(trade.Status),
			strconv.FormatFloat(trade.Size, 'f', -1, 64),
			strconv.FormatFloat(trade.Entry, 'f', -1, 64),
			strconv.FormatFloat(trade.Exit, 'f', -1, 64),
			strconv.FormatFloat(trade.Notional, 'f', -1, 64),
			strconv.FormatFloat(trade.PNL, 'f', -1, 64),
			strconv.FormatFloat(trade.Fee, 'f', -1, 64),
			strconv.Itoa(trade.DurationMinutes),
			trade.EntryAt.Format(time.RFC3339),
			trade.ExitAt.Format(time.RFC3339),
			note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTransfers writes one CSV row per transfer.
func WriteTransfers(w io.Writer, transfers []domain.Transfer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "transfer_number", "occurred_at", "type", "amount", "status", "asset"}); err != nil {
		return err
	}
	for _, transfer := range transfers {
		record := []string{
			transfer.ID,
			transfer.TransferNumber,
			transfer.OccurredAt.Format(time.RFC3339),
			string(transfer.Type),
			strconv.FormatFloat(transfer.Amount, 'f', -1, 64),
			string(transfer.Status),
			transfer.Asset,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
