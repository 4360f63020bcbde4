package mockdata

import (
	"fmt"
	"math"
	"sort"

	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/format"
)

// orderSeedMask decorrelates the order stream from the trade stream while
// keeping it a pure function of the synthesis seed.
const orderSeedMask = 0x1f2e3d4c

const maxOrders = 96

var timeInForceValues = []domain.TimeInForce{
	domain.TimeInForceGTC,
	domain.TimeInForceIOC,
	domain.TimeInForceFOK,
}

// BuildOrders derives order records from the most recent trades by entry
// time, capped at 96. Status is assigned by rank: roughly 14% OPEN, then 10%
// CANCELED, remainder FILLED. Zero trades yield zero orders.
func BuildOrders(trades []domain.Trade, seed uint32) []domain.Order {
	rng := NewSource(seed ^ orderSeedMask)

	recent := append([]domain.Trade(nil), trades...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EntryAt.After(recent[j].EntryAt)
	})
	if len(recent) > maxOrders {
		recent = recent[:maxOrders]
	}
	if len(recent) == 0 {
		return []domain.Order{}
	}

	openTarget := int(math.Max(4, math.Round(float64(len(recent))*0.14)))
	canceledTarget := int(math.Max(3, math.Round(float64(len(recent))*0.10)))

	orders := make([]domain.Order, 0, len(recent))
	for i, trade := range recent {
		status := domain.OrderStatusFilled
		if i < openTarget {
			status = domain.OrderStatusOpen
		} else if i < openTarget+canceledTarget {
			status = domain.OrderStatusCanceled
		}

		limitOffset := rng.Between(-0.0045, 0.0035)
		price := format.Round(trade.Entry*(1+limitOffset), 2)
		tif := timeInForceValues[rng.Intn(len(timeInForceValues))]

		filledRatio := 1.0
		switch status {
		case domain.OrderStatusCanceled:
			filledRatio = rng.Between(0.05, 0.6)
		case domain.OrderStatusOpen:
			filledRatio = rng.Between(0, 0.35)
		}
		filledSize := format.Round(trade.Size*filledRatio, trade.SizeDigits)
		orderNumber := fmt.Sprintf("DV-%d", int(rng.Between(100000, 999999)))

		orders = append(orders, domain.Order{
			ID:          "order-" + trade.ID,
			OrderNumber: orderNumber,
			Symbol:      trade.Symbol,
			BaseAsset:   trade.BaseAsset,
			Side:        trade.Side,
			Type:        trade.Type,
			TimeInForce: tif,
			Size:        trade.Size,
			FilledSize:  filledSize,
			SizeDigits:  trade.SizeDigits,
			Price:       price,
			Status:      status,
			CreatedAt:   trade.EntryAt,
		})
	}
	return orders
}
