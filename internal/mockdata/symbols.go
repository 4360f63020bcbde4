package mockdata

// SymbolProfile configures the price and size ranges a symbol's trades are
// sampled from.
type SymbolProfile struct {
	Pair       string
	BaseAsset  string
	EntryMin   float64
	EntryMax   float64
	SizeMin    float64
	SizeMax    float64
	SizeDigits int
}

// Symbols is the fixed universe the synthesizer picks from.
var Symbols = []SymbolProfile{
	{Pair: "BTC / USDT", BaseAsset: "BTC", EntryMin: 27000, EntryMax: 34000, SizeMin: 0.15, SizeMax: 2.4, SizeDigits: 3},
	{Pair: "ETH / USDT", BaseAsset: "ETH", EntryMin: 1450, EntryMax: 2100, SizeMin: 2, SizeMax: 26, SizeDigits: 3},
	{Pair: "SOL / USDT", BaseAsset: "SOL", EntryMin: 18, EntryMax: 72, SizeMin: 80, SizeMax: 520, SizeDigits: 2},
	{Pair: "BNB / USDT", BaseAsset: "BNB", EntryMin: 205, EntryMax: 340, SizeMin: 18, SizeMax: 140, SizeDigits: 2},
	{Pair: "XRP / USDT", BaseAsset: "XRP", EntryMin: 0.43, EntryMax: 0.71, SizeMin: 1200, SizeMax: 10000, SizeDigits: 0},
}
