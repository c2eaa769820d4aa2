// Package sim is the ring-road motion model: vehicles that follow the car
// ahead around a circular road and now and then leave on a ramp.
//
// The package is single-threaded. Callers tick a Simulation from one
// goroutine and read state back between ticks.
package sim

import (
	"errors"
	"fmt"

	"github.com/ukydev/ring-traffic/internal/geometry"
	"github.com/ukydev/ring-traffic/internal/models"
)

const (
	DefaultNumVehicles = 50
	DefaultMaxSpeedKmh = 70.0
	DefaultRadius      = 300.0

	MinSpeed            = 1.0
	AccelStep           = 0.05
	DecelStep           = 0.1
	CongestionThreshold = 40.0
	RampSpeed           = 2.0
	RampSpan            = 90.0
	ExitProbability     = 0.01

	// kmhPerAngularUnit converts MaxSpeedKmh into degrees per tick.
	kmhPerAngularUnit = 60.0
)

var (
	ErrInvalidParams = errors.New("invalid simulation parameters")
	ErrBrokenRing    = errors.New("successor relation is not a single cycle")
)

// RampAngles are where the ramps attach to the ring. They are only used for
// drawing; ramp entry is not gated on them.
var RampAngles = []float64{30, 150, 210, 330}

// UpdateOrder controls what a vehicle sees of its successor during a tick.
type UpdateOrder string

const (
	// OrderInPlace reads the successor as it is when the vehicle is
	// advanced: already moved this tick if it comes earlier in creation
	// order, not yet moved otherwise.
	OrderInPlace UpdateOrder = "in_place"
	// OrderBuffered reads every successor angle from a snapshot taken at
	// the start of the tick.
	OrderBuffered UpdateOrder = "buffered"
)

// ParseUpdateOrder parses the configuration form of an UpdateOrder.
func ParseUpdateOrder(s string) (UpdateOrder, error) {
	switch UpdateOrder(s) {
	case OrderInPlace, OrderBuffered:
		return UpdateOrder(s), nil
	}
	return "", fmt.Errorf("%w: unknown update order %q", ErrInvalidParams, s)
}

// Params holds the tunables of the model.
type Params struct {
	NumVehicles         int
	MaxSpeedKmh         float64
	MinSpeed            float64
	AccelStep           float64
	DecelStep           float64
	CongestionThreshold float64
	RampSpeed           float64
	RampSpan            float64
	ExitProbability     float64
	Center              models.Point
	Radius              float64
	Order               UpdateOrder
}

// DefaultParams returns the stock 50-car ring centred in a 1280x800 window.
func DefaultParams() Params {
	return Params{
		NumVehicles:         DefaultNumVehicles,
		MaxSpeedKmh:         DefaultMaxSpeedKmh,
		MinSpeed:            MinSpeed,
		AccelStep:           AccelStep,
		DecelStep:           DecelStep,
		CongestionThreshold: CongestionThreshold,
		RampSpeed:           RampSpeed,
		RampSpan:            RampSpan,
		ExitProbability:     ExitProbability,
		Center:              models.Point{X: 640, Y: 400},
		Radius:              DefaultRadius,
		Order:               OrderInPlace,
	}
}

// MaxSpeed is the top speed in degrees per tick.
func (p Params) MaxSpeed() float64 {
	return p.MaxSpeedKmh / kmhPerAngularUnit
}

// Validate checks that the parameters describe a runnable ring.
func (p Params) Validate() error {
	switch {
	case p.NumVehicles < 1:
		return fmt.Errorf("%w: need at least one vehicle, got %d", ErrInvalidParams, p.NumVehicles)
	case p.MinSpeed <= 0:
		return fmt.Errorf("%w: min speed must be positive, got %g", ErrInvalidParams, p.MinSpeed)
	case p.MaxSpeed() < p.MinSpeed:
		return fmt.Errorf("%w: max speed %g is below min speed %g", ErrInvalidParams, p.MaxSpeed(), p.MinSpeed)
	case p.AccelStep < 0 || p.DecelStep < 0:
		return fmt.Errorf("%w: speed steps must not be negative", ErrInvalidParams)
	case p.CongestionThreshold <= 0 || p.CongestionThreshold > geometry.FullTurn:
		return fmt.Errorf("%w: congestion threshold %g out of (0, 360]", ErrInvalidParams, p.CongestionThreshold)
	case p.RampSpeed <= 0 || p.RampSpan <= 0:
		return fmt.Errorf("%w: ramp speed and span must be positive", ErrInvalidParams)
	case p.ExitProbability < 0 || p.ExitProbability > 1:
		return fmt.Errorf("%w: exit probability %g out of [0, 1]", ErrInvalidParams, p.ExitProbability)
	case p.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidParams, p.Radius)
	}
	if _, err := ParseUpdateOrder(string(p.Order)); err != nil {
		return err
	}
	return nil
}
