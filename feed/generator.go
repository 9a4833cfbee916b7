// Package feed provides a demo random-walk market-data producer that
// drives a ring buffer writer, standing in for a real exchange feed.
package feed

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Symbol identifies one of the demo instruments a Generator quotes.
type Symbol uint16

// Demo symbol set, standing in for a real exchange's symbol table.
const (
	SymbolBTCPERP Symbol = 1001
	SymbolETHPERP Symbol = 1002
)

// Tick is the fixed-shape payload published into the ring buffer: one
// best-bid/best-ask style quote for a single symbol.
type Tick struct {
	Symbol      Symbol
	BidPrice    float64
	BidSize     float64
	AskPrice    float64
	AskSize     float64
	TimestampNs uint64
}

// Publisher is the write-side capability a Generator needs: anything that
// can accept a Tick. ring.WriteHandle[Tick] satisfies this directly;
// ringmetrics.InstrumentedWriter[Tick] satisfies it too, so a Generator
// can be driven through either without feed depending on ringmetrics.
type Publisher interface {
	Publish(Tick)
}

// Generator advances a random-walk quote for a single symbol on a fixed
// interval and publishes it through a Publisher. Publish calls are not
// internally synchronized: Run must not be called concurrently against
// the same Publisher from more than one goroutine. Several Generators
// may share one Publisher as long as a single goroutine drives them
// sequentially, e.g. by calling Next on each in turn instead of Run.
type Generator struct {
	handle Publisher
	symbol Symbol
	mid    float64
	spread float64
	rng    *rand.Rand
	period time.Duration
}

// NewGenerator builds a Generator that publishes through handle for the
// given symbol, starting from basePrice with the given tick period.
func NewGenerator(handle Publisher, symbol Symbol, basePrice, baseSpread float64, period time.Duration) *Generator {
	return &Generator{
		handle: handle,
		symbol: symbol,
		mid:    basePrice,
		spread: baseSpread,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano() + int64(symbol))),
		period: period,
	}
}

// Run publishes ticks until ctx is cancelled.
func (g *Generator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.handle.Publish(g.Next())
		}
	}
}

// Next advances the random walk and returns the tick to publish. Run
// calls this on each tick; callers driving a generator without Run's
// ticker loop (e.g. a fixed-iteration smoke check) may call it directly.
func (g *Generator) Next() Tick {
	g.mid += g.mid * (g.rng.Float64() - 0.5) * 0.0002
	spread := g.spread * (0.5 + g.rng.Float64())

	bid := round2(g.mid - spread/2)
	ask := round2(g.mid + spread/2)

	return Tick{
		Symbol:      g.symbol,
		BidPrice:    bid,
		BidSize:     0.1 + g.rng.Float64()*2.0,
		AskPrice:    ask,
		AskSize:     0.1 + g.rng.Float64()*2.0,
		TimestampNs: uint64(time.Now().UnixNano()),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
