// Package market models the per-tick snapshot handed over by the simulator and the orders sent back.
package market

import "sort"

// Symbol identifies a tradable instrument.
type Symbol string

// Trade is a single print reported by the simulator.
type Trade struct {
	Symbol    Symbol `json:"symbol"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	Buyer     string `json:"buyer,omitempty"`
	Seller    string `json:"seller,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// OrderDepth holds resting volume per price level for one instrument.
// Ask quantities may arrive negative; only the magnitude matters.
type OrderDepth struct {
	BuyOrders  map[int]int `json:"buy_orders"`
	SellOrders map[int]int `json:"sell_orders"`
}

// Snapshot is the read-only market view for a single tick.
type Snapshot struct {
	Timestamp    int64                 `json:"timestamp"`
	TraderData   string                `json:"trader_data"`
	OrderDepths  map[Symbol]OrderDepth `json:"order_depths"`
	Position     map[Symbol]int        `json:"position"`
	MarketTrades map[Symbol][]Trade    `json:"market_trades"`
	OwnTrades    map[Symbol][]Trade    `json:"own_trades"`
}

// Order is a limit order; positive quantity buys, negative sells.
type Order struct {
	Symbol   Symbol `json:"symbol"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// IsBuy reports whether the order adds to the position.
func (o Order) IsBuy() bool { return o.Quantity > 0 }

// Depth returns the order depth for symbol and whether it was present.
func (s Snapshot) Depth(symbol Symbol) (OrderDepth, bool) {
	d, ok := s.OrderDepths[symbol]
	return d, ok
}

// PositionOf returns the current position, zero when unknown.
func (s Snapshot) PositionOf(symbol Symbol) int {
	return s.Position[symbol]
}

// BestBid returns the highest bid price and its volume.
func (d OrderDepth) BestBid() (price, qty int, ok bool) {
	for p, q := range d.BuyOrders {
		if !ok || p > price {
			price, qty, ok = p, abs(q), true
		}
	}
	return price, qty, ok
}

// BestAsk returns the lowest ask price and its volume as a positive number.
func (d OrderDepth) BestAsk() (price, qty int, ok bool) {
	for p, q := range d.SellOrders {
		if !ok || p < price {
			price, qty, ok = p, abs(q), true
		}
	}
	return price, qty, ok
}

// BidsWithin returns bid prices in [lo, hi], ascending.
func (d OrderDepth) BidsWithin(lo, hi int) []int {
	return levelsWithin(d.BuyOrders, lo, hi)
}

// AsksWithin returns ask prices in [lo, hi], ascending.
func (d OrderDepth) AsksWithin(lo, hi int) []int {
	return levelsWithin(d.SellOrders, lo, hi)
}

func levelsWithin(levels map[int]int, lo, hi int) []int {
	var out []int
	for p := range levels {
		if p >= lo && p <= hi {
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
