// Package execution hands emitted orders to the venue; here it only logs and counts them.
package execution

import (
	"prosperity-go/internal/market"
	"prosperity-go/internal/metrics"

	"github.com/rs/zerolog"
)

// Side enumerates order directions used by the executor.
type Side string

const (
	// Buy indicates a long order.
	Buy Side = "BUY"
	// Sell indicates a short order.
	Sell Side = "SELL"
)

// SideOf maps a signed order quantity onto a Side.
func SideOf(order market.Order) Side {
	if order.IsBuy() {
		return Buy
	}
	return Sell
}

// Fill is an executed order as seen by the paper account.
type Fill struct {
	Timestamp int64         `json:"timestamp"`
	Symbol    market.Symbol `json:"symbol"`
	Side      Side          `json:"side"`
	Qty       int           `json:"qty"`
	Price     int           `json:"price"`
}

// Executor implements a logger-backed submitter for orders.
type Executor struct{ log zerolog.Logger }

// NewExecutor wraps a zerolog logger for order submissions.
func NewExecutor(log zerolog.Logger) *Executor { return &Executor{log: log} }

// Submit logs the order request and counts it.
func (executor *Executor) Submit(order market.Order) error {
	side := SideOf(order)
	metrics.OrdersTotal.WithLabelValues(string(order.Symbol), string(side)).Inc()
	executor.log.Info().Str("sym", string(order.Symbol)).Str("side", string(side)).Int("qty", order.Quantity).Int("px", order.Price).Msg("submit order")
	return nil
}

// SubmitAll submits orders in symbol order as produced by the controller.
func (executor *Executor) SubmitAll(symbols []market.Symbol, orders map[market.Symbol][]market.Order) (int, error) {
	var n int
	for _, sym := range symbols {
		for _, order := range orders[sym] {
			if err := executor.Submit(order); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
