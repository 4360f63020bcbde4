package domain

import "time"

// OrderStatus represents the status of an order record. It is independent of
// the parent trade's status even though the OPEN label is shared.
type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "OPEN"
	OrderStatusFilled   OrderStatus = "FILLED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// TimeInForce represents an order's time-in-force tag.
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

// Order represents an order record derived 1:1 from a recent trade.
// Orders are created once at synthesis time and are read-only afterwards.
type Order struct {
	ID          string      // "order-" + parent trade ID
	OrderNumber string      // Display number, e.g. "DV-123456"
	Symbol      string      // Pair name inherited from the trade
	BaseAsset   string      // Base asset inherited from the trade
	Side        Side        // Inherited from the trade
	Type        OrderType   // Inherited from the trade
	TimeInForce TimeInForce // GTC, IOC or FOK
	Size        float64     // Requested size (the trade's size)
	FilledSize  float64     // Filled quantity, depends on status
	SizeDigits  int         // Rounding precision inherited from the trade
	Price       float64     // Limit/market price offset from the trade entry
	Status      OrderStatus // OPEN, FILLED or CANCELED
	CreatedAt   time.Time   // The trade's entry timestamp
}
