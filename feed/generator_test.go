package feed

import (
	"context"
	"testing"
	"time"

	"github.com/alephtx/seqring/ring"
)

func TestGeneratorPublishesWithinRange(t *testing.T) {
	buf := ring.NewBuffer[Tick](64)
	w, err := buf.TryAcquireWriter()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Release()

	g := NewGenerator(w, SymbolBTCPERP, 63100.0, 1.0, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	g.Run(ctx)

	r := buf.Reader()
	count := 0
	for {
		tick, ok := r.Pop()
		if !ok {
			break
		}
		count++
		if tick.Symbol != SymbolBTCPERP {
			t.Fatalf("got symbol %v, want %v", tick.Symbol, SymbolBTCPERP)
		}
		if tick.AskPrice <= tick.BidPrice {
			t.Fatalf("ask %v <= bid %v", tick.AskPrice, tick.BidPrice)
		}
	}
	if count == 0 {
		t.Fatal("expected at least one published tick")
	}
}
