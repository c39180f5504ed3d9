package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-bench-datagen/internal/clock"
	"github.com/ariefcatur/go-bench-datagen/internal/config"
	"github.com/ariefcatur/go-bench-datagen/internal/httpx"
	"github.com/ariefcatur/go-bench-datagen/internal/logger"
	"github.com/ariefcatur/go-bench-datagen/internal/metrics"
	"github.com/ariefcatur/go-bench-datagen/internal/runlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const maxRowsPerRequest = 1_000_000

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := httpx.NewRouter(log, reg)
	dh := &httpx.DatasetsHandler{
		Clock:            clock.System{},
		Metrics:          metrics.New(reg),
		Runs:             runlog.FileLister{Path: cfg.RunLogPath},
		Log:              log,
		DefaultCustomers: cfg.Customers,
		DefaultOrders:    cfg.Orders,
		MaxRows:          maxRowsPerRequest,
	}
	dh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
