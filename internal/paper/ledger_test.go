package paper

import (
	"testing"

	"prosperity-go/internal/execution"
)

func TestLedgerRecordSnapshot(t *testing.T) {
	ledger := NewLedger(2)
	fill := execution.Fill{Symbol: "AMETHYSTS", Qty: 1}
	ledger.Record(fill)

	snapshot := ledger.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 fill, got %d", len(snapshot))
	}
	if snapshot[0].Symbol != fill.Symbol {
		t.Fatalf("unexpected fill symbol")
	}

	ledger.Reset()
	if len(ledger.Snapshot()) != 0 {
		t.Fatalf("expected ledger reset")
	}
}

func TestLedgerVolume(t *testing.T) {
	ledger := NewLedger(0)
	ledger.Record(execution.Fill{Symbol: "STARFRUIT", Side: execution.Buy, Qty: 3})
	ledger.Record(execution.Fill{Symbol: "STARFRUIT", Side: execution.Sell, Qty: 2})
	if got := ledger.Volume("STARFRUIT"); got != 5 {
		t.Fatalf("expected volume 5, got %d", got)
	}
	ledger.Reset()
	if got := ledger.Volume("STARFRUIT"); got != 0 {
		t.Fatalf("expected volume cleared, got %d", got)
	}
}
