package main

import (
	"VCS_Basic_Web_App/internal/web-server/app"
	"VCS_Basic_Web_App/internal/web-server/config"
	"VCS_Basic_Web_App/internal/web-server/web"
	"VCS_Basic_Web_App/pkg/logger"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	appConfig, err := config.LoadConfig("./.env")
	if err != nil {
		log.Fatalf("load config error: %v", err)
	}

	// set up logger
	zapLogger, fileSyncer, err := logger.NewServiceLogger("web-server", appConfig.Log.Level, appConfig.Log.File)
	if err != nil {
		log.Fatalf("set up logger error: %v", err)
	}
	defer zapLogger.Sync()
	logger.ReloadOnSIGHUP(zapLogger, fileSyncer)

	assets, err := web.Assets(appConfig.Server.StaticDir)
	if err != nil {
		zapLogger.Fatal("failed to load static assets", zap.Error(err), zap.String("static_dir", appConfig.Server.StaticDir))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Set up http server
	gin.SetMode(gin.ReleaseMode)
	r, err := app.NewEngine(appConfig.Server, zapLogger, registry, assets, startedAt)
	if err != nil {
		zapLogger.Fatal("failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              appConfig.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLogger.Info(fmt.Sprintf("starting server on %s", srv.Addr),
			zap.String("environment", appConfig.Server.Environment),
			zap.Strings("allowed_origins", appConfig.Server.Origins()))
		zapLogger.Info(fmt.Sprintf("access: http://localhost:%s", appConfig.Server.Port))
		if e := srv.ListenAndServe(); e != nil && !errors.Is(e, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(e))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("shutting down server...", zap.String("signal", sig.String()))
	ctx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("server exiting")
}
