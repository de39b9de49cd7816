// Package history keeps a bounded window of recent trade prices per instrument.
package history

import "github.com/markcheno/go-talib"

// Buffer is a fixed-capacity FIFO of prices backed by a ring.
// It is not safe for concurrent use.
type Buffer struct {
	prices []int
	head   int // next write slot
	count  int
}

// New allocates a buffer holding at most capacity prices.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{prices: make([]int, capacity)}
}

// Cap returns the configured capacity.
func (b *Buffer) Cap() int { return len(b.prices) }

// Len returns the number of buffered prices.
func (b *Buffer) Len() int { return b.count }

// Record appends price, overwriting the oldest entry once full.
func (b *Buffer) Record(price int) {
	b.prices[b.head] = price
	b.head = (b.head + 1) % len(b.prices)
	if b.count < len(b.prices) {
		b.count++
	}
}

// Seed replaces the contents with the trailing capacity entries of prices.
func (b *Buffer) Seed(prices []int) {
	b.head, b.count = 0, 0
	if extra := len(prices) - len(b.prices); extra > 0 {
		prices = prices[extra:]
	}
	for _, p := range prices {
		b.Record(p)
	}
}

// Values returns the buffered prices oldest first.
func (b *Buffer) Values() []int {
	out := make([]int, 0, b.count)
	start := (b.head - b.count + len(b.prices)) % len(b.prices)
	for i := 0; i < b.count; i++ {
		out = append(out, b.prices[(start+i)%len(b.prices)])
	}
	return out
}

// Average returns the mean of every buffered price; ok is false when empty.
func (b *Buffer) Average() (avg float64, ok bool) {
	if b.count == 0 {
		return 0, false
	}
	return b.SMA(b.count)
}

// SMA returns the mean of the newest window prices; ok is false until window samples exist.
func (b *Buffer) SMA(window int) (float64, bool) {
	if window < 1 || window > b.count {
		return 0, false
	}
	values := b.Values()
	tail := make([]float64, window)
	for i, p := range values[len(values)-window:] {
		tail[i] = float64(p)
	}
	sma := talib.Sma(tail, window)
	return sma[len(sma)-1], true
}
