package strategy

import (
	"prosperity-go/internal/market"
	"prosperity-go/internal/risk"
)

// StopLoss liquidates a long position once the best bid drops below Floor.
// A zero Floor disables it.
type StopLoss struct {
	Floor int
}

// Check returns the forced sell of the whole position at the best bid.
func (s StopLoss) Check(depth market.OrderDepth, position int, budget *risk.Budget) (market.Order, bool) {
	if s.Floor == 0 || position <= 0 {
		return market.Order{}, false
	}
	bid, _, ok := depth.BestBid()
	if !ok || bid >= s.Floor {
		return market.Order{}, false
	}
	return budget.Sell(bid, position)
}
