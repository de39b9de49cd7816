package strategy

import (
	"fmt"

	"github.com/rs/zerolog"

	"prosperity-go/internal/config"
	"prosperity-go/internal/history"
	"prosperity-go/internal/market"
	"prosperity-go/internal/metrics"
	"prosperity-go/internal/risk"
)

// Result is what one tick hands back to the simulator.
type Result struct {
	Orders map[market.Symbol][]market.Order
	// Conversions is always zero; conversions belong to the execution layer.
	Conversions int
	TraderData  string
}

type instrument struct {
	symbol   market.Symbol
	limits   risk.Limits
	stopLoss StopLoss
	startAt  int64
	capacity int // zero when the rule keeps no history
	rule     Rule
}

// Controller evaluates every configured instrument once per snapshot. It is
// immutable after construction; all cross-tick data lives in State.
type Controller struct {
	log         zerolog.Logger
	instruments []instrument
}

// Option configures Controller construction parameters.
type Option func(*Controller)

// WithLogger attaches a logger for order and stop-loss events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// New builds a controller from the engine configuration, preserving instrument order.
func New(engine config.Engine, opts ...Option) (*Controller, error) {
	c := &Controller{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	for _, inst := range engine.Instruments {
		rule, err := Build(inst)
		if err != nil {
			return nil, err
		}
		entry := instrument{
			symbol:   market.Symbol(inst.Symbol),
			limits:   risk.Limits{Position: engine.Limit(inst)},
			stopLoss: StopLoss{Floor: inst.StopLoss},
			startAt:  inst.StartAt,
			rule:     rule,
		}
		if inst.Kind == config.KindTrend {
			entry.capacity = max(inst.Capacity, inst.LongWindow, 1)
		}
		c.instruments = append(c.instruments, entry)
	}
	return c, nil
}

// Build returns the rule matching the instrument's configured kind.
func Build(inst config.Instrument) (Rule, error) {
	switch inst.Kind {
	case config.KindStable:
		return StableRule{Thresholds: Thresholds{BuyBelow: inst.BuyBelow, SellAbove: inst.SellAbove}}, nil
	case config.KindTrend:
		return TrendFollower{ShortWindow: inst.ShortWindow, LongWindow: inst.LongWindow, Offset: inst.Offset}, nil
	case config.KindBand:
		return BandRule{
			BuyLow:   inst.BuyBand.Low,
			BuyHigh:  inst.BuyBand.High,
			SellLow:  inst.SellBand.Low,
			SellHigh: inst.SellBand.High,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q for %s", config.ErrUnknownKind, inst.Kind, inst.Symbol)
	}
}

// Symbols lists the configured instruments in evaluation order.
func (c *Controller) Symbols() []market.Symbol {
	out := make([]market.Symbol, len(c.instruments))
	for i, inst := range c.instruments {
		out[i] = inst.symbol
	}
	return out
}

// Limits returns each instrument's position bound.
func (c *Controller) Limits() map[market.Symbol]int {
	out := make(map[market.Symbol]int, len(c.instruments))
	for _, inst := range c.instruments {
		out[inst.symbol] = inst.limits.Position
	}
	return out
}

// NewState allocates empty price buffers for instruments that keep history.
func (c *Controller) NewState() *State {
	st := &State{
		histories:  make(map[market.Symbol]*history.Buffer),
		watermarks: make(map[market.Symbol]int64),
	}
	for _, inst := range c.instruments {
		if inst.capacity > 0 {
			st.histories[inst.symbol] = history.New(inst.capacity)
		}
	}
	return st
}

// Seed primes the price buffers from historical snapshots before live ticks.
func (c *Controller) Seed(st *State, past []market.Snapshot) {
	for _, inst := range c.instruments {
		buf := st.histories[inst.symbol]
		if buf == nil {
			continue
		}
		var prices []int
		var mark int64
		for _, snap := range past {
			for _, tr := range snap.MarketTrades[inst.symbol] {
				prices = append(prices, tr.Price)
				if len(prices) == 1 || tr.Timestamp > mark {
					mark = tr.Timestamp
				}
			}
		}
		if len(prices) == 0 {
			continue
		}
		buf.Seed(prices)
		st.watermarks[inst.symbol] = mark
	}
}

// Run processes one snapshot. Per instrument the priority is fixed:
//  1. stop-loss; when it fires nothing else is emitted for the instrument,
//  2. the instrument's rule (stable rules evaluate sells before buys).
//
// Every order passes through a risk.Budget so that any combination of fills
// keeps the position inside the limit.
func (c *Controller) Run(st *State, snap market.Snapshot) Result {
	res := Result{Orders: make(map[market.Symbol][]market.Order, len(c.instruments))}
	for _, inst := range c.instruments {
		res.Orders[inst.symbol] = c.evaluate(st, inst, snap)
	}
	data, err := st.Encode()
	if err != nil {
		c.log.Error().Err(err).Msg("encode trader data")
	}
	res.TraderData = data
	return res
}

func (c *Controller) evaluate(st *State, inst instrument, snap market.Snapshot) []market.Order {
	orders := make([]market.Order, 0, 2)
	if n := st.ingest(inst.symbol, snap.MarketTrades[inst.symbol]); n > 0 {
		c.log.Debug().Str("sym", string(inst.symbol)).Int("trades", n).Msg("history updated")
	}

	depth, ok := snap.Depth(inst.symbol)
	if !ok || snap.Timestamp < inst.startAt {
		return orders
	}
	position := snap.PositionOf(inst.symbol)
	budget := inst.limits.Budget(inst.symbol, position)

	if order, fired := inst.stopLoss.Check(depth, position, budget); fired {
		metrics.StopLossTotal.WithLabelValues(string(inst.symbol)).Inc()
		c.log.Warn().Str("sym", string(inst.symbol)).Int("qty", order.Quantity).Int("px", order.Price).Msg("stop-loss sell")
		return append(orders, order)
	}

	in := Input{
		Symbol:   inst.symbol,
		Depth:    depth,
		Position: position,
		Budget:   budget,
		History:  st.histories[inst.symbol],
	}
	for _, order := range inst.rule.Orders(in) {
		c.log.Debug().Str("sym", string(inst.symbol)).Str("rule", inst.rule.Name()).Int("qty", order.Quantity).Int("px", order.Price).Msg("order")
		orders = append(orders, order)
	}
	return orders
}
