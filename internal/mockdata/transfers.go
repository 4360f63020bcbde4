package mockdata

import (
	"fmt"
	"sort"
	"time"

	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/format"
)

// transferSeedMask decorrelates the transfer stream from trades and orders.
const transferSeedMask = 0x0a1b2c3d

const transferCount = 18

var (
	transferTypes    = []domain.TransferType{domain.TransferDeposit, domain.TransferWithdrawal}
	transferStatuses = []domain.TransferStatus{
		domain.TransferStatusCompleted,
		domain.TransferStatusPending,
		domain.TransferStatusFailed,
	}
	pendingBiasStatuses = []domain.TransferStatus{
		domain.TransferStatusPending,
		domain.TransferStatusFailed,
	}
	transferAssets = []string{"USDC", "USDT", "SOL"}
)

// BuildTransfers synthesizes 18 deposit/withdrawal records with timestamps
// uniformly sampled inside the trade exit-time span, sorted descending by
// time. The first two records are biased toward non-completed statuses so the
// transfers table always shows in-flight rows. Zero trades yield zero transfers.
func BuildTransfers(trades []domain.Trade, seed uint32) []domain.Transfer {
	if len(trades) == 0 {
		return []domain.Transfer{}
	}
	rng := NewSource(seed ^ transferSeedMask)

	minMs := trades[0].ExitAt.UnixMilli()
	maxMs := minMs
	for _, trade := range trades[1:] {
		ms := trade.ExitAt.UnixMilli()
		if ms < minMs {
			minMs = ms
		}
		if ms > maxMs {
			maxMs = ms
		}
	}

	transfers := make([]domain.Transfer, 0, transferCount)
	for i := 0; i < transferCount; i++ {
		occurredAt := time.UnixMilli(int64(rng.Between(float64(minMs), float64(maxMs+1)))).UTC()
		transferType := transferTypes[rng.Intn(len(transferTypes))]

		var status domain.TransferStatus
		if i < 2 {
			status = pendingBiasStatuses[rng.Intn(len(pendingBiasStatuses))]
		} else {
			status = transferStatuses[rng.Intn(len(transferStatuses))]
		}

		var amount float64
		if transferType == domain.TransferDeposit {
			amount = format.Round(rng.Between(350, 9500), 2)
		} else {
			amount = format.Round(rng.Between(120, 6200), 2)
		}
		transferNumber := fmt.Sprintf("TX-%d", int(rng.Between(1000000, 9999999)))
		asset := transferAssets[rng.Intn(len(transferAssets))]

		transfers = append(transfers, domain.Transfer{
			ID:             fmt.Sprintf("transfer-%d", i+1),
			TransferNumber: transferNumber,
			OccurredAt:     occurredAt,
			Type:           transferType,
			Amount:         amount,
			Status:         status,
			Asset:          asset,
		})
	}

	sort.SliceStable(transfers, func(i, j int) bool {
		return transfers[i].OccurredAt.After(transfers[j].OccurredAt)
	})
	return transfers
}
