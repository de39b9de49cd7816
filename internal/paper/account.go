// Package paper simulates fills against a virtual account so the harness can
// check that emitted orders never push a position past its limit.
package paper

import (
	"errors"
	"fmt"
	"sync"

	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
)

// FillRecorder captures paper fills for later inspection.
type FillRecorder interface {
	Record(execution.Fill)
}

var (
	// ErrPositionLimit is returned when a fill would breach the symbol's bound.
	ErrPositionLimit = errors.New("position limit exceeded")
	// ErrInvalidFill is returned for non-positive quantities or prices.
	ErrInvalidFill = errors.New("invalid fill")
)

// Account tracks cash and signed per-symbol positions while trading in paper mode.
type Account struct {
	mu           sync.Mutex
	startingCash float64
	cash         float64
	limits       map[market.Symbol]int
	positions    map[market.Symbol]int
	recorders    []FillRecorder
}

// Snapshot represents a thread-safe view of the account state marked to the supplied prices.
type Snapshot struct {
	Cash      float64
	Equity    float64
	PnL       float64
	Positions map[market.Symbol]int
}

// NewAccount constructs an account with starting cash and per-symbol position bounds.
// Symbols missing from limits are unbounded.
func NewAccount(startingCash float64, limits map[market.Symbol]int, recorders ...FillRecorder) *Account {
	return &Account{
		startingCash: startingCash,
		cash:         startingCash,
		limits:       limits,
		positions:    make(map[market.Symbol]int),
		recorders:    recorders,
	}
}

// Apply executes an order in full at its limit price.
func (a *Account) Apply(ts int64, order market.Order) error {
	qty := order.Quantity
	if qty < 0 {
		qty = -qty
	}
	return a.Fill(execution.Fill{
		Timestamp: ts,
		Symbol:    order.Symbol,
		Side:      execution.SideOf(order),
		Qty:       qty,
		Price:     order.Price,
	})
}

// Fill mutates balances for an executed fill, rejecting fills that breach the position bound.
func (a *Account) Fill(fill execution.Fill) error {
	if fill.Qty <= 0 || fill.Price <= 0 {
		return fmt.Errorf("%w: qty=%d price=%d", ErrInvalidFill, fill.Qty, fill.Price)
	}
	signed := fill.Qty
	switch fill.Side {
	case execution.Buy:
	case execution.Sell:
		signed = -signed
	default:
		return fmt.Errorf("%w: unknown side %q", ErrInvalidFill, fill.Side)
	}

	a.mu.Lock()
	next := a.positions[fill.Symbol] + signed
	if limit, ok := a.limits[fill.Symbol]; ok && (next > limit || next < -limit) {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s would reach %d (limit %d)", ErrPositionLimit, fill.Symbol, next, limit)
	}
	a.positions[fill.Symbol] = next
	a.cash -= float64(signed * fill.Price)
	recorders := a.recorders
	a.mu.Unlock()

	for _, r := range recorders {
		r.Record(fill)
	}
	return nil
}

// Position returns the current position for the supplied symbol.
func (a *Account) Position(symbol market.Symbol) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.positions[symbol]
}

// Positions returns a copy of every position, ready to drop into a market.Snapshot.
func (a *Account) Positions() map[market.Symbol]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[market.Symbol]int, len(a.positions))
	for sym, qty := range a.positions {
		out[sym] = qty
	}
	return out
}

// Snapshot returns a copy of balances marked using the supplied prices map.
func (a *Account) Snapshot(marks map[market.Symbol]float64) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions := make(map[market.Symbol]int, len(a.positions))
	equity := a.cash
	for sym, qty := range a.positions {
		positions[sym] = qty
		equity += float64(qty) * marks[sym]
	}
	return Snapshot{
		Cash:      a.cash,
		Equity:    equity,
		PnL:       equity - a.startingCash,
		Positions: positions,
	}
}

// Mid returns the midpoint of the best bid and ask, falling back to whichever side exists.
func Mid(depth market.OrderDepth) (float64, bool) {
	bid, _, okBid := depth.BestBid()
	ask, _, okAsk := depth.BestAsk()
	switch {
	case okBid && okAsk:
		return float64(bid+ask) / 2, true
	case okBid:
		return float64(bid), true
	case okAsk:
		return float64(ask), true
	}
	return 0, false
}
