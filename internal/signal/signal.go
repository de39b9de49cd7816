// Package signal turns moving-average readings into a directional bias consumed by strategies.
package signal

// Trend expresses the bias derived from a short and a long moving average.
type Trend int

const (
	// Unavailable means at least one average lacks enough samples; strategies must not trade on it.
	Unavailable Trend = iota
	// Neutral means both averages agree exactly.
	Neutral
	// Bullish means the short average sits above the long one.
	Bullish
	// Bearish means the short average sits below the long one.
	Bearish
)

func (t Trend) String() string {
	switch t {
	case Neutral:
		return "neutral"
	case Bullish:
		return "bullish"
	case Bearish:
		return "bearish"
	default:
		return "unavailable"
	}
}

// Reading is one moving-average observation.
type Reading struct {
	Value float64
	OK    bool
}

// Classify compares the short and long averages.
func Classify(short, long Reading) Trend {
	if !short.OK || !long.OK {
		return Unavailable
	}
	switch {
	case short.Value > long.Value:
		return Bullish
	case short.Value < long.Value:
		return Bearish
	default:
		return Neutral
	}
}
