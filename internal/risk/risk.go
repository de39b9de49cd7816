// Package risk enforces the symmetric per-instrument position bound on every order.
package risk

import "prosperity-go/internal/market"

// DefaultPositionLimit is the simulator's per-instrument bound.
const DefaultPositionLimit = 20

// Limits holds the absolute position bound for one instrument.
type Limits struct {
	Position int
}

// Allow reports whether position lies inside [-Position, +Position].
func (l Limits) Allow(position int) bool {
	return position <= l.Position && position >= -l.Position
}

// Budget clamps one tick's orders for one instrument. Buy and sell capacity
// are tracked separately against the starting position, so any subset of the
// emitted orders filling keeps the position within the limit.
type Budget struct {
	symbol   market.Symbol
	limit    int
	position int
	bought   int
	sold     int
}

// Budget starts a clamp for symbol at the given position.
func (l Limits) Budget(symbol market.Symbol, position int) *Budget {
	return &Budget{symbol: symbol, limit: l.Position, position: position}
}

// BuyCapacity is the largest quantity still purchasable this tick.
func (b *Budget) BuyCapacity() int {
	return max(0, b.limit-b.position-b.bought)
}

// SellCapacity is the largest quantity still sellable this tick.
func (b *Budget) SellCapacity() int {
	return max(0, b.limit+b.position-b.sold)
}

// Buy builds a buy of min(available, capacity) at price; ok is false when nothing fits.
func (b *Budget) Buy(price, available int) (market.Order, bool) {
	qty := min(abs(available), b.BuyCapacity())
	if qty <= 0 {
		return market.Order{}, false
	}
	b.bought += qty
	return market.Order{Symbol: b.symbol, Price: price, Quantity: qty}, true
}

// Sell builds a sell of min(available, capacity) at price; ok is false when nothing fits.
func (b *Budget) Sell(price, available int) (market.Order, bool) {
	qty := min(abs(available), b.SellCapacity())
	if qty <= 0 {
		return market.Order{}, false
	}
	b.sold += qty
	return market.Order{Symbol: b.symbol, Price: price, Quantity: -qty}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
