package paper

import (
	"fmt"

	"github.com/rs/zerolog"

	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
	"prosperity-go/internal/strategy"
)

// TickWriter receives one decision record per processed snapshot.
type TickWriter interface {
	Write(v any) error
}

// Session drives the controller over a stream of snapshots and fills every
// emitted order in full, the worst case for the position bound.
type Session struct {
	ctrl     *strategy.Controller
	state    *strategy.State
	exec     *execution.Executor
	account  *Account
	ticks    TickWriter
	log      zerolog.Logger
	marks    map[market.Symbol]float64
	simulate bool
	steps    int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTickWriter records every tick's result.
func WithTickWriter(w TickWriter) SessionOption {
	return func(s *Session) { s.ticks = w }
}

// WithRecordedPositions keeps the positions carried by the snapshots and skips
// paper fills, for replaying logs whose positions already reflect execution.
func WithRecordedPositions() SessionOption {
	return func(s *Session) { s.simulate = false }
}

// NewSession wires a controller to an executor and paper account.
func NewSession(ctrl *strategy.Controller, state *strategy.State, exec *execution.Executor, account *Account, log zerolog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		ctrl:     ctrl,
		state:    state,
		exec:     exec,
		account:  account,
		log:      log,
		marks:    make(map[market.Symbol]float64),
		simulate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Step runs one snapshot through the controller, submits and fills the orders.
func (s *Session) Step(snap market.Snapshot) (strategy.Result, error) {
	if s.steps == 0 && snap.TraderData != "" {
		if err := s.state.Restore(snap.TraderData); err != nil {
			s.log.Warn().Err(err).Msg("ignoring trader data")
		}
	}
	s.steps++

	if s.simulate {
		snap.Position = s.account.Positions()
	}
	for sym, depth := range snap.OrderDepths {
		if mid, ok := Mid(depth); ok {
			s.marks[sym] = mid
		}
	}

	res := s.ctrl.Run(s.state, snap)
	symbols := s.ctrl.Symbols()
	if _, err := s.exec.SubmitAll(symbols, res.Orders); err != nil {
		return res, fmt.Errorf("submit orders: %w", err)
	}
	if s.simulate {
		for _, sym := range symbols {
			for _, order := range res.Orders[sym] {
				if err := s.account.Apply(snap.Timestamp, order); err != nil {
					return res, fmt.Errorf("fill %s at %d: %w", sym, snap.Timestamp, err)
				}
			}
		}
	}
	if s.ticks != nil {
		record := TickRecord{
			Timestamp:   snap.Timestamp,
			Orders:      res.Orders,
			Conversions: res.Conversions,
			TraderData:  res.TraderData,
		}
		if err := s.ticks.Write(record); err != nil {
			return res, fmt.Errorf("record tick: %w", err)
		}
	}
	return res, nil
}

// Steps returns how many snapshots were processed.
func (s *Session) Steps() int { return s.steps }

// Summary marks the account at the latest observed mids.
func (s *Session) Summary() Snapshot {
	return s.account.Snapshot(s.marks)
}
