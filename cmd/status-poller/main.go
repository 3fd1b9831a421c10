package main

import (
	status_poller "VCS_Basic_Web_App/internal/status-poller"
	"VCS_Basic_Web_App/pkg/logger"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	appConfig, err := status_poller.LoadConfig("./.env")
	if err != nil {
		log.Fatalf("load config error: %v", err)
	}

	// set up logger
	zapLogger, fileSyncer, err := logger.NewServiceLogger("status-poller", appConfig.Log.Level, appConfig.Log.File)
	if err != nil {
		log.Fatalf("set up logger error: %v", err)
	}
	defer zapLogger.Sync()
	logger.ReloadOnSIGHUP(zapLogger, fileSyncer)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := status_poller.NewMetrics(registry)
	if err != nil {
		zapLogger.Fatal("failed to register metrics", zap.Error(err))
	}

	client, err := status_poller.NewHealthClient(appConfig.Poller.BackendURL, appConfig.Poller.HealthPath, appConfig.Poller.ProbeTimeout)
	if err != nil {
		zapLogger.Fatal("failed to create health client", zap.Error(err))
	}
	poller, err := status_poller.NewPoller(
		client,
		status_poller.NewStateStore(),
		status_poller.NewTerminalRenderer(os.Stdout, !color.NoColor),
		metrics,
		zapLogger,
		appConfig.Poller.PollInterval,
		appConfig.Poller.ProbeTimeout,
	)
	if err != nil {
		zapLogger.Fatal("failed to create poller", zap.Error(err))
	}
	watcher, err := status_poller.NewNetworkWatcher(poller, appConfig.Poller.NetworkCheckInterval, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to create network watcher", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLogger.Info("polling backend",
		zap.String("backend_url", appConfig.Poller.BackendURL),
		zap.String("health_path", appConfig.Poller.HealthPath))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	if appConfig.Poller.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{
			Addr:              appConfig.Poller.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			zapLogger.Info("serving metrics", zap.String("addr", srv.Addr))
			if e := srv.ListenAndServe(); e != nil && !errors.Is(e, http.ErrServerClosed) {
				return e
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err = g.Wait(); err != nil {
		zapLogger.Error("status poller exited with error", zap.Error(err))
	}
	zapLogger.Info("status poller exiting")
}
