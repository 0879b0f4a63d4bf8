package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-customerform/internal/config"
	"github.com/goliatone/go-customerform/internal/fakeapi"
	"github.com/goliatone/go-customerform/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address (overrides stub.addr)")
	flag.Parse()

	cfg, err := config.Load(config.WithFile(*configFile))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.Must(logger.Config{
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		Development:       cfg.Logger.Development || cfg.IsDevelopment(),
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	listen := cfg.Stub.Addr
	if *addr != "" {
		listen = *addr
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           fakeapi.New(fakeapi.WithLogger(appLogger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Starting customer API stub", zap.String("addr", listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown failed", zap.Error(err))
	}
	appLogger.Info("Customer API stub stopped")
}
