package paper

import (
	"sync"

	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
)

// Ledger stores paper fills in memory and keeps per-symbol traded volume.
type Ledger struct {
	mu     sync.Mutex
	fills  []execution.Fill
	volume map[market.Symbol]int
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{
		fills:  make([]execution.Fill, 0, capacity),
		volume: make(map[market.Symbol]int),
	}
}

// Record appends a fill to the ledger.
func (l *Ledger) Record(fill execution.Fill) {
	l.mu.Lock()
	l.fills = append(l.fills, fill)
	l.volume[fill.Symbol] += fill.Qty
	l.mu.Unlock()
}

// Volume returns the total quantity traded in symbol.
func (l *Ledger) Volume(symbol market.Symbol) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.volume[symbol]
}

// Snapshot returns a copy of the recorded fills.
func (l *Ledger) Snapshot() []execution.Fill {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]execution.Fill, len(l.fills))
	copy(out, l.fills)
	return out
}

// Reset clears all stored fills.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.fills = l.fills[:0]
	clear(l.volume)
	l.mu.Unlock()
}
