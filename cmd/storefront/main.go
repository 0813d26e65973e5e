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

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/controller"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	store, closeStore, err := session.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("session store init failed: %v", err)
	}
	sess := session.New(store, cfg.APIBaseURL)

	client := apiclient.NewClient(cfg.APIBaseURL, sess, apiclient.NewHTTPClient(cfg.RequestTimeout), logger)

	var publisher events.Publisher = events.Noop{}
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			log.Fatal(err)
		}
		publisher = kafkaPub
	}

	set := controller.NewSet(controller.Deps{API: client, Session: sess, Events: publisher})

	e, err := web.New(set, sess, logger)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("storefront listening", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL, "session_backend", cfg.SessionBackend)
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

	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	if err := closeStore(); err != nil {
		logger.Error("session store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
