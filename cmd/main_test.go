package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/ring-traffic/internal/auth"
	"github.com/ukydev/ring-traffic/internal/config"
	"github.com/ukydev/ring-traffic/internal/models"
	"github.com/ukydev/ring-traffic/internal/sim"
)

type recordingSink struct {
	frames []models.Frame
}

func (s *recordingSink) Publish(_ context.Context, frame models.Frame) error {
	s.frames = append(s.frames, frame)
	return nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	return config.Config{
		NumVehicles:            8,
		MaxSpeedKmh:            sim.DefaultMaxSpeedKmh,
		Seed:                   42,
		FPS:                    60,
		Order:                  sim.OrderInPlace,
		ScreenWidth:            1280,
		ScreenHeight:           800,
		RingRadius:             300,
		CarRadius:              10,
		RampLength:             50,
		LogLevel:               "info",
		LogFormat:              "text",
		Port:                   "0",
		FrameEncoding:          "json",
		PublishEvery:           2,
		JWTSecret:              "test-secret",
		JWTExpiry:              time.Hour,
		ObserverUsername:       "observer",
		ObserverPasswordHash:   hash,
		RateLimitRequests:      100,
		RateLimitWindowSeconds: 60,
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumVehicles = 0
	_, err := newApp(cfg, "")
	assert.ErrorIs(t, err, sim.ErrInvalidParams)

	cfg = testConfig(t)
	cfg.PublishEvery = 0
	_, err = newApp(cfg, "")
	assert.Error(t, err)
}

func TestNewApp_ServesFrames(t *testing.T) {
	sink := &recordingSink{}
	a, err := newApp(testConfig(t), "run-test", sink)
	require.NoError(t, err)

	server := httptest.NewServer(a.handler)
	defer server.Close()

	body, _ := json.Marshal(models.TokenRequest{Username: "observer", Password: "password123"})
	resp, err := http.Post(server.URL+"/api/auth/token", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	var token models.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	resp.Body.Close()

	get := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token.Token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	resp = get("/api/frame")
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	for i := 0; i < 4; i++ {
		a.runner.Step(context.Background())
	}

	resp = get("/api/frame")
	var frame models.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&frame))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint64(4), frame.Number)
	assert.Len(t, frame.Vehicles, 8)
	assert.Equal(t, "run-test", frame.RunID)

	// frames 2 and 4 reach the sink
	require.Len(t, sink.frames, 2)
	assert.Equal(t, uint64(2), sink.frames[0].Number)

	resp = get("/api/track")
	var track models.TrackInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&track))
	resp.Body.Close()
	assert.Equal(t, models.Point{X: 640, Y: 400}, track.Center)
	assert.Len(t, track.Ramps, len(sim.RampAngles))
}
