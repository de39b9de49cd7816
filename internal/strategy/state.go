package strategy

import (
	"fmt"

	"github.com/goccy/go-json"

	"prosperity-go/internal/history"
	"prosperity-go/internal/market"
)

// State is the only data carried between ticks. The caller owns it and must
// not share it between concurrent Run calls.
type State struct {
	histories  map[market.Symbol]*history.Buffer
	watermarks map[market.Symbol]int64
}

type stateToken struct {
	Prices     map[market.Symbol][]int `json:"p,omitempty"`
	Watermarks map[market.Symbol]int64 `json:"w,omitempty"`
}

// History returns the price buffer for symbol, nil when the symbol keeps none.
func (s *State) History(symbol market.Symbol) *history.Buffer {
	return s.histories[symbol]
}

// ingest records trades newer than the symbol's watermark, so replaying a tick
// does not double count its prints.
func (s *State) ingest(symbol market.Symbol, trades []market.Trade) int {
	buf := s.histories[symbol]
	if buf == nil || len(trades) == 0 {
		return 0
	}
	mark, seen := s.watermarks[symbol]
	next, recorded := mark, 0
	for _, tr := range trades {
		if seen && tr.Timestamp <= mark {
			continue
		}
		buf.Record(tr.Price)
		if recorded == 0 || tr.Timestamp > next {
			next = tr.Timestamp
		}
		recorded++
	}
	if recorded > 0 {
		s.watermarks[symbol] = next
	}
	return recorded
}

// Encode serialises the buffers into the opaque trader data string.
func (s *State) Encode() (string, error) {
	token := stateToken{
		Prices:     make(map[market.Symbol][]int, len(s.histories)),
		Watermarks: s.watermarks,
	}
	for sym, buf := range s.histories {
		if buf.Len() > 0 {
			token.Prices[sym] = buf.Values()
		}
	}
	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// Restore reloads buffers from a token produced by Encode. Unknown symbols are
// ignored and an empty token is a no-op.
func (s *State) Restore(data string) error {
	if data == "" {
		return nil
	}
	var token stateToken
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	for sym, prices := range token.Prices {
		if buf := s.histories[sym]; buf != nil {
			buf.Seed(prices)
		}
	}
	for sym, mark := range token.Watermarks {
		if _, ok := s.histories[sym]; ok {
			s.watermarks[sym] = mark
		}
	}
	return nil
}
