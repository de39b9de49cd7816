package strategy

import (
	"prosperity-go/internal/market"
	"prosperity-go/internal/signal"
)

// TrendFollower trades pullbacks against the buffered average, gated by a
// short/long moving-average trend. With both windows zero the gate is off and
// it mean-reverts around the average alone.
type TrendFollower struct {
	ShortWindow int
	LongWindow  int
	Offset      int
}

// Name returns the configured identifier for logging.
func (t TrendFollower) Name() string { return "trend" }

// Trend classifies the buffered history.
func (t TrendFollower) Trend(in Input) signal.Trend {
	if in.History == nil {
		return signal.Unavailable
	}
	short, okShort := in.History.SMA(t.ShortWindow)
	long, okLong := in.History.SMA(t.LongWindow)
	return signal.Classify(signal.Reading{Value: short, OK: okShort}, signal.Reading{Value: long, OK: okLong})
}

func (t TrendFollower) gated() bool { return t.LongWindow > 0 }

// Orders emits at most one order per tick.
func (t TrendFollower) Orders(in Input) []market.Order {
	if in.History == nil {
		return nil
	}
	avg, ok := in.History.Average()
	if !ok {
		return nil
	}
	lower := avg - float64(t.Offset)
	upper := avg + float64(t.Offset)

	wantBuy, wantSell := true, true
	if t.gated() {
		switch t.Trend(in) {
		case signal.Bullish:
			wantSell = false
		case signal.Bearish:
			wantBuy = false
		default:
			return nil
		}
	}

	if wantBuy {
		if price, qty, ok := in.Depth.BestAsk(); ok && float64(price) < lower {
			if order, ok := in.Budget.Buy(price, qty); ok {
				return []market.Order{order}
			}
			return nil
		}
	}
	if wantSell {
		if price, qty, ok := in.Depth.BestBid(); ok && float64(price) > upper {
			if order, ok := in.Budget.Sell(price, qty); ok {
				return []market.Order{order}
			}
		}
	}
	return nil
}
