package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mockapi"
	"github.com/Skotchmaster/storefront/internal/util"
)

func main() {
	cfg := config.LoadMockAPI()

	logger := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	driver, dsn := db.DriverSQLite, cfg.SQLitePath
	if cfg.DatabaseURL != "" {
		driver, dsn = db.DriverPostgres, cfg.DatabaseURL
	}
	gdb, err := db.Open(ctx, driver, dsn)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	svc := mockapi.NewService(gdb, cfg.JWTSecret)
	if err := svc.Repo.Migrate(ctx); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if cfg.Seed {
		if err := mockapi.Seed(ctx, svc.Repo); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mockapi.NewServer(svc, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("mock api listening", "addr", cfg.ListenAddr, "driver", driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	util.AwaitShutdown(quit, func() {
		log.Println("force exit")
		os.Exit(1)
	})

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := db.Close(gdb); err != nil {
		logger.Error("db close error", "error", err)
	}

	logger.Info("shutdown complete")
}
