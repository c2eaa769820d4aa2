package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/auth"
	"github.com/ukydev/ring-traffic/internal/config"
	"github.com/ukydev/ring-traffic/internal/handlers"
	"github.com/ukydev/ring-traffic/internal/middleware"
	"github.com/ukydev/ring-traffic/internal/shell"
	"github.com/ukydev/ring-traffic/internal/sim"
	"github.com/ukydev/ring-traffic/internal/telemetry"
)

// app is the observer server: a running simulation plus the HTTP API over it.
type app struct {
	runner  *shell.Runner
	handler http.Handler
	closers []func() error
}

func newApp(cfg config.Config, runID string, sinks ...shell.FrameSink) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	simulation, err := sim.New(cfg.SimParams(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewService(auth.Options{
		Secret:       cfg.JWTSecret,
		TokenExpiry:  cfg.JWTExpiry,
		Username:     cfg.ObserverUsername,
		PasswordHash: cfg.ObserverPasswordHash,
	})
	if err != nil {
		return nil, err
	}
	if cfg.ObserverPasswordHash == "" {
		log.Warn("OBSERVER_PASSWORD_HASH not set, token endpoint disabled")
	}

	runner := shell.NewRunner(simulation, shell.Options{
		RunID:        runID,
		Interval:     cfg.FrameInterval(),
		MaxFrames:    cfg.MaxFrames,
		PublishEvery: cfg.PublishEvery,
		LogEvery:     cfg.LogEvery,
	}, sinks...)

	track := simulation.Track().Info(cfg.CarRadius, cfg.RampLength)
	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:                   handlers.NewAuthHandler(authService),
		Frames:                 handlers.NewFrameHandler(runner.Store(), track),
		AuthMiddleware:         middleware.NewAuthMiddleware(authService),
		RateLimiter:            middleware.NewRateLimitMiddleware(),
		RateLimitRequests:      cfg.RateLimitRequests,
		RateLimitWindowSeconds: cfg.RateLimitWindowSeconds,
	})

	return &app{runner: runner, handler: router}, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.WithError(err).Warn("Close failed")
		}
	}
}

func main() {
	cfg := config.Load()
	if err := config.SetupLogging(cfg); err != nil {
		log.WithError(err).Fatal("Invalid logging configuration")
	}

	runID := uuid.NewString()
	var sinks []shell.FrameSink
	var closers []func() error
	if cfg.MQTTBroker != "" {
		enc, err := telemetry.ParseEncoding(cfg.FrameEncoding)
		if err != nil {
			log.WithError(err).Fatal("Invalid FRAME_ENCODING")
		}
		publisher, err := telemetry.NewMQTTPublisher(telemetry.MQTTOptions{
			Broker:   cfg.MQTTBroker,
			ClientID: cfg.ClientID(runID),
			Topic:    cfg.MQTTTopic,
			Encoding: enc,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MQTT broker")
		}
		sinks = append(sinks, publisher)
		closers = append(closers, publisher.Close)
	}

	a, err := newApp(cfg, runID, sinks...)
	if err != nil {
		log.WithError(err).Fatal("Failed to start")
	}
	a.closers = closers
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.runner.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "run_id": a.runner.RunID()}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	<-done
}
