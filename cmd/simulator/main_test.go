package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/ring-traffic/internal/config"
	"github.com/ukydev/ring-traffic/internal/models"
	"github.com/ukydev/ring-traffic/internal/sim"
)

type collectingSink struct {
	mu     sync.Mutex
	frames []models.Frame
	err    error
}

func (s *collectingSink) Publish(_ context.Context, frame models.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
	return s.err
}

func headlessConfig() config.Config {
	return config.Config{
		NumVehicles:  12,
		MaxSpeedKmh:  sim.DefaultMaxSpeedKmh,
		Seed:         7,
		FPS:          1000,
		Order:        sim.OrderInPlace,
		MaxFrames:    10,
		ScreenWidth:  1280,
		ScreenHeight: 800,
		RingRadius:   300,
		PublishEvery: 5,
	}
}

func TestRun_FrameLimit(t *testing.T) {
	sink := &collectingSink{}
	frames, err := run(context.Background(), headlessConfig(), "run-1", sink)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), frames)

	// starting frame plus frames 5 and 10
	require.Len(t, sink.frames, 3)
	for i, want := range []uint64{0, 5, 10} {
		assert.Equal(t, want, sink.frames[i].Number)
		assert.Equal(t, "run-1", sink.frames[i].RunID)
		assert.Len(t, sink.frames[i].Vehicles, 12)
	}
}

func TestRun_SinkErrorsDoNotStop(t *testing.T) {
	sink := &collectingSink{err: errors.New("broker down")}
	frames, err := run(context.Background(), headlessConfig(), "run-2", sink)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), frames)
}

func TestRun_Cancelled(t *testing.T) {
	cfg := headlessConfig()
	cfg.MaxFrames = 0
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := run(ctx, cfg, "run-3")
	assert.NoError(t, err)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := headlessConfig()
	cfg.Order = "sideways"
	_, err := run(context.Background(), cfg, "run-4")
	assert.ErrorIs(t, err, sim.ErrInvalidParams)
}
