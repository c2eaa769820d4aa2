// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/ring-traffic/internal/models"
	"github.com/ukydev/ring-traffic/internal/sim"
)

// Config is everything the commands need to start.
type Config struct {
	NumVehicles int
	MaxSpeedKmh float64
	Seed        int64
	FPS         int
	Order       sim.UpdateOrder
	MaxFrames   uint64

	ScreenWidth  int
	ScreenHeight int
	RingRadius   float64
	CarRadius    float64
	RampLength   float64

	LogLevel  string
	LogFormat string
	LogEvery  uint64

	Port string

	MQTTBroker    string
	MQTTTopic     string
	MQTTClientID  string
	FrameEncoding string
	PublishEvery  uint64

	JWTSecret            string
	JWTExpiry            time.Duration
	ObserverUsername     string
	ObserverPasswordHash string

	RateLimitRequests      int
	RateLimitWindowSeconds int
}

// Load reads envFiles (".env" when none are given) if present, then the
// environment. Unparsable values fall back to their defaults with a warning.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("file", f).Warn("Failed to load env file")
		}
	}

	return Config{
		NumVehicles: getInt("NUM_CARS", sim.DefaultNumVehicles),
		MaxSpeedKmh: getFloat("MAX_SPEED_KMH", sim.DefaultMaxSpeedKmh),
		Seed:        getInt64("SIM_SEED", time.Now().UnixNano()),
		FPS:         getInt("SIM_FPS", 60),
		Order:       sim.UpdateOrder(getString("SIM_UPDATE_ORDER", string(sim.OrderInPlace))),
		MaxFrames:   getUint64("SIM_MAX_FRAMES", 0),

		ScreenWidth:  getInt("SCREEN_WIDTH", 1280),
		ScreenHeight: getInt("SCREEN_HEIGHT", 800),
		RingRadius:   getFloat("RING_RADIUS", sim.DefaultRadius),
		CarRadius:    getFloat("CAR_RADIUS", 10),
		RampLength:   getFloat("RAMP_LENGTH", 50),

		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "text"),
		LogEvery:  getUint64("LOG_EVERY", 60),

		Port: getString("PORT", "8080"),

		MQTTBroker:    os.Getenv("MQTT_BROKER"),
		MQTTTopic:     getString("MQTT_TOPIC", "ringroad/frames"),
		MQTTClientID:  os.Getenv("MQTT_CLIENT_ID"),
		FrameEncoding: getString("FRAME_ENCODING", "json"),
		PublishEvery:  getUint64("PUBLISH_EVERY", 1),

		JWTSecret:            getString("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry:            getDuration("JWT_EXPIRY", 24*time.Hour),
		ObserverUsername:     getString("OBSERVER_USERNAME", "observer"),
		ObserverPasswordHash: os.Getenv("OBSERVER_PASSWORD_HASH"),

		RateLimitRequests:      getInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindowSeconds: getInt("RATE_LIMIT_WINDOW_SECONDS", 60),
	}
}

// SimParams maps the configuration onto model parameters. The ring is
// centred on the screen.
func (c Config) SimParams() sim.Params {
	p := sim.DefaultParams()
	p.NumVehicles = c.NumVehicles
	p.MaxSpeedKmh = c.MaxSpeedKmh
	p.Radius = c.RingRadius
	p.Center = models.Point{X: float64(c.ScreenWidth / 2), Y: float64(c.ScreenHeight / 2)}
	p.Order = c.Order
	return p
}

// ClientID is MQTT_CLIENT_ID, or "ringsim-<runID>" when unset.
func (c Config) ClientID(runID string) string {
	if c.MQTTClientID != "" {
		return c.MQTTClientID
	}
	return "ringsim-" + runID
}

// FrameInterval is the pause between frames.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if err := c.SimParams().Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("SIM_FPS must be positive, got %d", c.FPS)
	}
	if c.PublishEvery == 0 {
		return fmt.Errorf("PUBLISH_EVERY must be at least 1")
	}
	return nil
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func SetupLogging(c Config) error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		warnDefault(key, v)
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		warnDefault(key, v)
	}
	return def
}

func getUint64(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		warnDefault(key, v)
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
		warnDefault(key, v)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		warnDefault(key, v)
	}
	return def
}

func warnDefault(key, value string) {
	log.WithFields(log.Fields{"key": key, "value": value}).Warn("Ignoring unparsable setting, using default")
}
