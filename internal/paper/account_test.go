package paper

import (
	"errors"
	"math"
	"testing"

	"prosperity-go/internal/execution"
	"prosperity-go/internal/market"
)

func TestApplyBuySellPnL(t *testing.T) {
	ledger := NewLedger(4)
	account := NewAccount(1000, map[market.Symbol]int{"AMETHYSTS": 20}, ledger)

	if err := account.Apply(100, market.Order{Symbol: "AMETHYSTS", Price: 9998, Quantity: 5}); err != nil {
		t.Fatalf("unexpected buy error: %v", err)
	}
	if err := account.Apply(200, market.Order{Symbol: "AMETHYSTS", Price: 10002, Quantity: -5}); err != nil {
		t.Fatalf("unexpected sell error: %v", err)
	}

	snap := account.Snapshot(map[market.Symbol]float64{"AMETHYSTS": 10000})
	if snap.Positions["AMETHYSTS"] != 0 {
		t.Fatalf("expected flat position, got %d", snap.Positions["AMETHYSTS"])
	}
	if math.Abs(snap.PnL-20) > 1e-9 {
		t.Fatalf("expected pnl 20, got %.2f", snap.PnL)
	}
	if len(ledger.Snapshot()) != 2 {
		t.Fatalf("expected both fills recorded, got %d", len(ledger.Snapshot()))
	}
}

func TestShortPositionMarksToMarket(t *testing.T) {
	account := NewAccount(0, nil)
	if err := account.Apply(1, market.Order{Symbol: "STARFRUIT", Price: 5000, Quantity: -3}); err != nil {
		t.Fatalf("unexpected sell error: %v", err)
	}
	snap := account.Snapshot(map[market.Symbol]float64{"STARFRUIT": 4990})
	if snap.Positions["STARFRUIT"] != -3 {
		t.Fatalf("expected short 3, got %d", snap.Positions["STARFRUIT"])
	}
	if math.Abs(snap.PnL-30) > 1e-9 {
		t.Fatalf("expected pnl 30, got %.2f", snap.PnL)
	}
}

func TestFillPositionLimit(t *testing.T) {
	account := NewAccount(0, map[market.Symbol]int{"AMETHYSTS": 20})
	if err := account.Apply(1, market.Order{Symbol: "AMETHYSTS", Price: 9998, Quantity: 21}); !errors.Is(err, ErrPositionLimit) {
		t.Fatalf("expected position limit error, got %v", err)
	}
	if err := account.Apply(1, market.Order{Symbol: "AMETHYSTS", Price: 10002, Quantity: -20}); err != nil {
		t.Fatalf("expected short to the limit to pass, got %v", err)
	}
	if account.Position("AMETHYSTS") != -20 {
		t.Fatalf("expected position -20, got %d", account.Position("AMETHYSTS"))
	}
}

func TestFillRejectsInvalid(t *testing.T) {
	account := NewAccount(0, nil)
	cases := []execution.Fill{
		{Symbol: "X", Side: execution.Buy, Qty: 0, Price: 1},
		{Symbol: "X", Side: execution.Buy, Qty: 1, Price: 0},
		{Symbol: "X", Side: "HOLD", Qty: 1, Price: 1},
	}
	for _, fill := range cases {
		if err := account.Fill(fill); !errors.Is(err, ErrInvalidFill) {
			t.Fatalf("expected invalid fill error for %+v, got %v", fill, err)
		}
	}
}

func TestMid(t *testing.T) {
	mid, ok := Mid(market.OrderDepth{BuyOrders: map[int]int{9998: 1}, SellOrders: map[int]int{10002: -1}})
	if !ok || mid != 10000 {
		t.Fatalf("expected mid 10000, got %.1f (ok=%v)", mid, ok)
	}
	mid, ok = Mid(market.OrderDepth{SellOrders: map[int]int{10002: -1}})
	if !ok || mid != 10002 {
		t.Fatalf("expected ask fallback, got %.1f", mid)
	}
	if _, ok := Mid(market.OrderDepth{}); ok {
		t.Fatalf("expected no mid on empty book")
	}
}
