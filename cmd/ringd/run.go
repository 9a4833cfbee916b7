package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/alephtx/seqring/broadcast"
	"github.com/alephtx/seqring/config"
	"github.com/alephtx/seqring/feed"
	"github.com/alephtx/seqring/ring"
	"github.com/alephtx/seqring/ringmetrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the producer, broadcast server, and metrics server",
	RunE:  runRingd,
}

var demoSymbols = map[string]struct {
	symbol feed.Symbol
	price  float64
	spread float64
}{
	"BTC": {feed.SymbolBTCPERP, 63100.0, 1.0},
	"ETH": {feed.SymbolETHPERP, 1825.0, 0.1},
}

func runRingd(cmd *cobra.Command, args []string) error {
	log.Println("🐙 ringd starting...")

	if err := config.LoadEnv(".env"); err != nil {
		log.Printf("config: .env: %v", err)
	}
	cfgPath := config.ResolvePath("config.toml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	buf := ring.NewBuffer[feed.Tick](cfg.Buffer.Slots)
	log.Printf("📡 ring buffer: %d slots", buf.Slots())

	reg := prometheus.NewRegistry()
	metrics, err := ringmetrics.NewCollector(reg)
	if err != nil {
		return err
	}

	handle, err := buf.TryAcquireWriter()
	if err != nil {
		metrics.RecordClaimResult(err)
		return err
	}
	iw := ringmetrics.WrapWriter(metrics, handle)

	var generators []*feed.Generator
	for _, name := range cfg.Symbols {
		spec, ok := demoSymbols[name]
		if !ok {
			log.Printf("run: unknown symbol %q, skipping", name)
			continue
		}
		log.Printf("🔌 %s: generator starting...", name)
		generators = append(generators, feed.NewGenerator(iw, spec.symbol, spec.price, spec.spread, 100*time.Millisecond))
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer iw.Release()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, gen := range generators {
					iw.Publish(gen.Next())
				}
			}
		}
	}()

	srv := broadcast.NewServer(buf, buf.Reader())
	httpSrv := &http.Server{Addr: cfg.Broadcast.Addr, Handler: srv}
	go func() {
		log.Printf("📡 broadcast: listening on %s", cfg.Broadcast.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("broadcast: %v", err)
		}
	}()

	metricsSrv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
	go func() {
		log.Printf("📈 metrics: listening on %s", cfg.Metrics.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("👋 shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	wg.Wait()
	log.Println("👋 ringd stopped.")
	return nil
}
