package sim

import (
	"fmt"

	"github.com/ukydev/ring-traffic/internal/models"
)

// Simulation ticks every vehicle of a Track once per frame.
type Simulation struct {
	track *Track
	rng   Source
	order UpdateOrder
	ticks uint64

	// successor angles at the start of the tick, for OrderBuffered
	snapshot []float64
}

// New builds a track from p and returns a simulation over it.
func New(p Params, rng Source) (*Simulation, error) {
	track, err := NewTrack(p, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to build track: %w", err)
	}
	return newSimulation(track, rng), nil
}

func newSimulation(track *Track, rng Source) *Simulation {
	s := &Simulation{
		track: track,
		rng:   rng,
		order: track.params.Order,
	}
	if s.order == OrderBuffered {
		s.snapshot = make([]float64, track.Len())
	}
	return s
}

// Tick advances every vehicle once, in creation order.
func (s *Simulation) Tick() {
	vehicles := s.track.vehicles
	if s.order == OrderBuffered {
		for i, v := range vehicles {
			s.snapshot[i] = v.angle
		}
	}
	for _, v := range vehicles {
		ahead := vehicles[v.successor].angle
		if s.order == OrderBuffered {
			ahead = s.snapshot[v.successor]
		}
		v.Advance(ahead, s.rng)
	}
	s.ticks++
}

// Ticks is the number of completed ticks.
func (s *Simulation) Ticks() uint64 { return s.ticks }

func (s *Simulation) Track() *Track { return s.track }

func (s *Simulation) Order() UpdateOrder { return s.order }

// Snapshot returns the state of every vehicle in creation order.
func (s *Simulation) Snapshot() []models.VehicleState {
	out := make([]models.VehicleState, 0, s.track.Len())
	for _, v := range s.track.vehicles {
		out = append(out, v.State())
	}
	return out
}
