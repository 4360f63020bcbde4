package domain

import "time"

// TransferType represents the direction of a wallet transfer.
type TransferType string

const (
	TransferDeposit    TransferType = "DEPOSIT"
	TransferWithdrawal TransferType = "WITHDRAWAL"
)

// TransferStatus represents the settlement state of a transfer.
type TransferStatus string

const (
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusFailed    TransferStatus = "FAILED"
)

// Transfer represents an independently synthesized deposit or withdrawal.
// Transfers have no relationship to trades beyond sharing the date span.
type Transfer struct {
	ID             string         // e.g. "transfer-3"
	TransferNumber string         // Display number, e.g. "TX-1234567"
	OccurredAt     time.Time      // Timestamp inside the trade date span (UTC)
	Type           TransferType   // DEPOSIT or WITHDRAWAL
	Amount         float64        // Transfer amount in quote currency
	Status         TransferStatus // COMPLETED, PENDING or FAILED
	Asset          string         // USDC, USDT or SOL
}
