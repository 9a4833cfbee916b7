package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alephtx/seqring/feed"
	"github.com/alephtx/seqring/ring"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a short, fixed-iteration producer/consumer smoke check",
	Long: "bench is a sanity check, not a performance benchmark: it " +
		"publishes a fixed number of ticks and reports how many a single " +
		"reader observed, as a quick way to eyeball overrun behavior.",
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "iterations", 10_000, "number of ticks to publish")
}

func runBench(cmd *cobra.Command, args []string) error {
	buf := ring.NewBuffer[feed.Tick](256)
	handle, err := buf.TryAcquireWriter()
	if err != nil {
		return err
	}
	defer handle.Release()

	gen := feed.NewGenerator(handle, feed.SymbolBTCPERP, 63100.0, 1.0, 0)
	r := buf.Reader()

	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		handle.Publish(gen.Next())
	}
	elapsed := time.Since(start)

	observed := 0
	for {
		if _, ok := r.Pop(); !ok {
			break
		}
		observed++
	}

	fmt.Printf("published %d ticks in %s, reader observed %d (ring holds at most %d)\n",
		benchIterations, elapsed, observed, buf.Slots())
	return nil
}
