// Package strategy turns market snapshots into position-bounded orders, one instrument at a time.
package strategy

import (
	"prosperity-go/internal/history"
	"prosperity-go/internal/market"
	"prosperity-go/internal/risk"
)

// Rule decides the orders for one instrument on one tick.
// Every order must come from the supplied budget.
type Rule interface {
	Name() string
	Orders(in Input) []market.Order
}

// Input is everything a rule may look at for a single instrument.
type Input struct {
	Symbol   market.Symbol
	Depth    market.OrderDepth
	Position int
	Budget   *risk.Budget
	// History is nil for rules that keep no price window.
	History *history.Buffer
}

// Thresholds are the static fair-value bounds of a stable instrument.
type Thresholds struct {
	BuyBelow  int
	SellAbove int
}

// StableRule trades a fixed fair value: it sells into bids above SellAbove and
// buys asks below BuyBelow. Sells are evaluated first.
type StableRule struct {
	Thresholds Thresholds
}

// Name returns the identifier for logging.
func (StableRule) Name() string { return "stable" }

// Orders takes the best level on each side that crosses its threshold.
func (r StableRule) Orders(in Input) []market.Order {
	var out []market.Order
	if price, qty, ok := in.Depth.BestBid(); ok && price > r.Thresholds.SellAbove {
		if order, ok := in.Budget.Sell(price, qty); ok {
			out = append(out, order)
		}
	}
	if price, qty, ok := in.Depth.BestAsk(); ok && price < r.Thresholds.BuyBelow {
		if order, ok := in.Budget.Buy(price, qty); ok {
			out = append(out, order)
		}
	}
	return out
}

// BandRule quotes inside its own acceptable ranges: flat, it joins the highest
// bid in BuyBand for the full buy capacity; long, it joins the lowest ask in
// SellBand for the whole position.
type BandRule struct {
	BuyLow, BuyHigh   int
	SellLow, SellHigh int
}

// Name returns the identifier for logging.
func (BandRule) Name() string { return "band" }

// Orders places at most one passive order.
func (r BandRule) Orders(in Input) []market.Order {
	switch {
	case in.Position == 0:
		prices := in.Depth.BidsWithin(r.BuyLow, r.BuyHigh)
		if len(prices) == 0 {
			return nil
		}
		if order, ok := in.Budget.Buy(prices[len(prices)-1], in.Budget.BuyCapacity()); ok {
			return []market.Order{order}
		}
	case in.Position > 0:
		prices := in.Depth.AsksWithin(r.SellLow, r.SellHigh)
		if len(prices) == 0 {
			return nil
		}
		if order, ok := in.Budget.Sell(prices[0], in.Position); ok {
			return []market.Order{order}
		}
	}
	return nil
}
