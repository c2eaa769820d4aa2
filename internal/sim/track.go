package sim

import (
	"fmt"

	"github.com/ukydev/ring-traffic/internal/geometry"
	"github.com/ukydev/ring-traffic/internal/models"
)

// Track is the ring: its geometry and the vehicles on it, in creation order.
type Track struct {
	params   *Params
	vehicles []*Vehicle
}

// NewTrack places p.NumVehicles vehicles evenly around the ring with a
// random starting speed each, and links them into one successor cycle.
func NewTrack(p Params, rng Source) (*Track, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}

	params := &p
	spacing := geometry.FullTurn / float64(p.NumVehicles)
	vehicles := make([]*Vehicle, 0, p.NumVehicles)
	for i := 0; i < p.NumVehicles; i++ {
		speed := p.MaxSpeed() * (0.5 + 0.5*rng.Float64())
		vehicles = append(vehicles, newVehicle(i, float64(i)*spacing, speed, params))
	}
	return newTrack(params, vehicles)
}

func newTrack(p *Params, vehicles []*Vehicle) (*Track, error) {
	t := &Track{params: p, vehicles: vehicles}
	t.buildRing()
	if err := t.VerifyRing(); err != nil {
		return nil, err
	}
	return t, nil
}

// buildRing makes vehicle i follow vehicle (i+1) mod N.
func (t *Track) buildRing() {
	n := len(t.vehicles)
	for i, v := range t.vehicles {
		v.successor = (i + 1) % n
	}
}

// VerifyRing checks that following successors from any vehicle returns to
// it after exactly N steps and never sooner.
func (t *Track) VerifyRing() error {
	n := len(t.vehicles)
	if n == 0 {
		return fmt.Errorf("%w: no vehicles", ErrBrokenRing)
	}
	for start := range t.vehicles {
		cur := start
		for step := 1; step <= n; step++ {
			next := t.vehicles[cur].successor
			if next < 0 || next >= n {
				return fmt.Errorf("%w: vehicle %d points at %d", ErrBrokenRing, cur, next)
			}
			cur = next
			if cur == start && step < n {
				return fmt.Errorf("%w: vehicle %d is on a cycle of length %d", ErrBrokenRing, start, step)
			}
		}
		if cur != start {
			return fmt.Errorf("%w: vehicle %d does not return after %d steps", ErrBrokenRing, start, n)
		}
	}
	return nil
}

// Len is the number of vehicles.
func (t *Track) Len() int { return len(t.vehicles) }

// Vehicle returns the i-th vehicle in creation order.
func (t *Track) Vehicle(i int) *Vehicle { return t.vehicles[i] }

// Successor returns the vehicle ahead of vehicle i.
func (t *Track) Successor(i int) *Vehicle {
	return t.vehicles[t.vehicles[i].successor]
}

// Vehicles returns the vehicles in creation order. The slice is a copy.
func (t *Track) Vehicles() []*Vehicle {
	out := make([]*Vehicle, len(t.vehicles))
	copy(out, t.vehicles)
	return out
}

func (t *Track) Center() models.Point { return t.params.Center }
func (t *Track) Radius() float64      { return t.params.Radius }

// Ramps returns the ramp attachment angles.
func (t *Track) Ramps() []float64 {
	out := make([]float64, len(RampAngles))
	copy(out, RampAngles)
	return out
}

// RampStubs returns the ramp lines a renderer draws, running outward from
// the ring for length units.
func (t *Track) RampStubs(length float64) []models.RampStub {
	stubs := make([]models.RampStub, 0, len(RampAngles))
	for _, a := range RampAngles {
		stubs = append(stubs, models.RampStub{
			Angle: a,
			Start: geometry.PointOnCircle(t.params.Center, t.params.Radius, a),
			End:   geometry.PointOnCircle(t.params.Center, t.params.Radius+length, a),
		})
	}
	return stubs
}

// Info describes the track for renderers.
func (t *Track) Info(carRadius, rampLength float64) models.TrackInfo {
	return models.TrackInfo{
		Center:    t.params.Center,
		Radius:    t.params.Radius,
		CarRadius: carRadius,
		Ramps:     t.RampStubs(rampLength),
	}
}
