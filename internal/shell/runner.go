// Package shell drives a simulation in real time: it paces frames, turns
// each tick into an immutable models.Frame and hands frames to sinks.
package shell

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/models"
)

// Stepper is the simulation as the shell sees it. *sim.Simulation
// satisfies it.
type Stepper interface {
	Tick()
	Ticks() uint64
	Snapshot() []models.VehicleState
}

// FrameSink receives published frames.
type FrameSink interface {
	Publish(ctx context.Context, frame models.Frame) error
}

// FrameStore holds the latest frame for concurrent readers.
type FrameStore struct {
	latest atomic.Pointer[models.Frame]
}

// Latest returns the most recent frame, if any.
func (s *FrameStore) Latest() (models.Frame, bool) {
	f := s.latest.Load()
	if f == nil {
		return models.Frame{}, false
	}
	return *f, true
}

// Publish stores frame as the latest. It never fails.
func (s *FrameStore) Publish(_ context.Context, frame models.Frame) error {
	s.latest.Store(&frame)
	return nil
}

// Options configures a Runner.
type Options struct {
	RunID        string
	Interval     time.Duration
	MaxFrames    uint64 // 0 runs until the context is cancelled
	PublishEvery uint64
	LogEvery     uint64
	Clock        func() time.Time
}

// Runner owns frame pacing and termination. Only the goroutine calling Run
// or Step touches the simulation.
type Runner struct {
	sim   Stepper
	opts  Options
	store *FrameStore
	sinks []FrameSink
}

// NewRunner returns a runner over sim. Frames always go to the runner's
// store; every PublishEvery-th frame also goes to sinks.
func NewRunner(sim Stepper, opts Options, sinks ...FrameSink) *Runner {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if opts.PublishEvery == 0 {
		opts.PublishEvery = 1
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Runner{
		sim:   sim,
		opts:  opts,
		store: &FrameStore{},
		sinks: sinks,
	}
}

func (r *Runner) RunID() string { return r.opts.RunID }

// Store is where the latest frame can be read from other goroutines.
func (r *Runner) Store() *FrameStore { return r.store }

// Step ticks the simulation once and publishes the resulting frame.
func (r *Runner) Step(ctx context.Context) models.Frame {
	r.sim.Tick()
	frame := r.frame()
	r.publish(ctx, frame)
	return frame
}

// Run publishes the starting frame, then steps once per interval until ctx
// is cancelled or MaxFrames ticks have run. It returns the number of ticks
// it ran.
func (r *Runner) Run(ctx context.Context) uint64 {
	start := r.frame()
	r.publish(ctx, start)

	log.WithFields(log.Fields{
		"run_id":     r.opts.RunID,
		"vehicles":   len(start.Vehicles),
		"interval":   r.opts.Interval,
		"max_frames": r.opts.MaxFrames,
	}).Info("Starting ring simulation")

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	var ran uint64
	for {
		if r.opts.MaxFrames > 0 && ran >= r.opts.MaxFrames {
			log.WithField("frames", ran).Info("Frame limit reached")
			return ran
		}
		select {
		case <-ctx.Done():
			log.WithField("frames", ran).Info("Simulation stopped")
			return ran
		case <-ticker.C:
			r.Step(ctx)
			ran++
		}
	}
}

func (r *Runner) frame() models.Frame {
	vehicles := r.sim.Snapshot()
	return models.Frame{
		RunID:     r.opts.RunID,
		Number:    r.sim.Ticks(),
		Timestamp: r.opts.Clock(),
		Vehicles:  vehicles,
		Stats:     models.ComputeStats(vehicles),
	}
}

func (r *Runner) publish(ctx context.Context, frame models.Frame) {
	r.store.Publish(ctx, frame)

	if frame.Number%r.opts.PublishEvery == 0 {
		for _, sink := range r.sinks {
			if err := sink.Publish(ctx, frame); err != nil {
				log.WithError(err).WithField("frame", frame.Number).Error("Failed to publish frame")
			}
		}
	}

	if r.opts.LogEvery > 0 && frame.Number%r.opts.LogEvery == 0 {
		log.WithFields(log.Fields{
			"frame":      frame.Number,
			"congested":  frame.Stats.Congested,
			"on_ramp":    frame.Stats.OnRamp,
			"mean_speed": frame.Stats.MeanSpeed,
		}).Debug("Frame summary")
	}
}
