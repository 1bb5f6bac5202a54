package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/strictenc/strictenc"
	"github.com/strictenc/strictenc/internal/api"
	"github.com/strictenc/strictenc/internal/config"
	"github.com/strictenc/strictenc/internal/metrics"
)

func main() {
	var (
		flagConfig string
		flagAddr   string
	)

	flag.StringVar(&flagConfig, "config", "strictenc.yaml", "Path to YAML config (missing file uses defaults)")
	flag.StringVar(&flagAddr, "addr", "", "Listen address override (e.g., ':9090')")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		slog.Error("failed to load config", "path", flagConfig, "error", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Server.ListenAddr = flagAddr
	}

	encoder := strictenc.New()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.NewRegistry(), cfg.Metrics.Namespace, encoder.Cache())
	}

	server := api.NewServer(encoder, cfg, m)
	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.Handler(),
	}

	go func() {
		slog.Info("starting encoder API", "addr", cfg.Server.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
