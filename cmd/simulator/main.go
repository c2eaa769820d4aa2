// Command simulator runs the ring road without an HTTP surface and
// publishes frames to MQTT when a broker is configured.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/config"
	"github.com/ukydev/ring-traffic/internal/shell"
	"github.com/ukydev/ring-traffic/internal/sim"
	"github.com/ukydev/ring-traffic/internal/telemetry"
)

// run drives a simulation built from cfg until ctx is done or the frame
// limit is reached, and returns the number of ticks run.
func run(ctx context.Context, cfg config.Config, runID string, sinks ...shell.FrameSink) (uint64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	simulation, err := sim.New(cfg.SimParams(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"run_id":   runID,
		"vehicles": cfg.NumVehicles,
		"seed":     cfg.Seed,
		"order":    simulation.Order(),
	}).Info("Starting headless simulation")

	runner := shell.NewRunner(simulation, shell.Options{
		RunID:        runID,
		Interval:     cfg.FrameInterval(),
		MaxFrames:    cfg.MaxFrames,
		PublishEvery: cfg.PublishEvery,
		LogEvery:     cfg.LogEvery,
	}, sinks...)
	return runner.Run(ctx), nil
}

func main() {
	cfg := config.Load()
	if err := config.SetupLogging(cfg); err != nil {
		log.WithError(err).Fatal("Invalid logging configuration")
	}
	runID := uuid.NewString()

	var sinks []shell.FrameSink
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
		defer publisher.Close()
		sinks = append(sinks, publisher)
	} else {
		log.Warn("MQTT_BROKER not set, frames are only logged")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frames, err := run(ctx, cfg, runID, sinks...)
	if err != nil {
		log.WithError(err).Fatal("Simulation failed")
	}
	log.WithFields(log.Fields{"run_id": runID, "frames": frames}).Info("Simulation finished")
}
