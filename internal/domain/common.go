package domain

// Side represents the direction of a trade (LONG or SHORT).
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// OrderType represents how an order was placed.
type OrderType string

const (
	OrderTypeMarket OrderType = "Market"
	OrderTypeLimit  OrderType = "Limit"
)

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "OPEN"
	TradeStatusClosed TradeStatus = "CLOSED"
)

// MarketScope classifies a trade as perpetual-futures-like or spot.
type MarketScope string

const (
	MarketScopeAll  MarketScope = "ALL"
	MarketScopePerp MarketScope = "PERP"
	MarketScopeSpot MarketScope = "SPOT"
)

// Session is one of the three trading sessions derived from the UTC exit hour.
type Session string

const (
	SessionAsia    Session = "Asia"
	SessionLondon  Session = "London"
	SessionNewYork Session = "New York"
)

// SessionNames lists the sessions in display order.
var SessionNames = []Session{SessionAsia, SessionLondon, SessionNewYork}

// SessionForHour maps a UTC hour of day to its trading session:
// Asia 0-7, London 8-15, New York 16-23.
func SessionForHour(hour int) Session {
	switch {
	case hour < 8:
		return SessionAsia
	case hour < 16:
		return SessionLondon
	default:
		return SessionNewYork
	}
}

// majorBases is the fixed reference set used for market-scope classification:
// trades whose base asset is a major trade as perpetuals, the rest as spot.
var majorBases = map[string]struct{}{
	"BTC": {},
	"ETH": {},
	"SOL": {},
	"BNB": {},
}

// ScopeForBaseAsset classifies a base asset into PERP or SPOT.
func ScopeForBaseAsset(baseAsset string) MarketScope {
	if _, ok := majorBases[baseAsset]; ok {
		return MarketScopePerp
	}
	return MarketScopeSpot
}
