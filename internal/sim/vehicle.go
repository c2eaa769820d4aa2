package sim

import (
	"github.com/ukydev/ring-traffic/internal/geometry"
	"github.com/ukydev/ring-traffic/internal/models"
)

// Source is the random source the model draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Vehicle is one car on the ring.
type Vehicle struct {
	id          int
	angle       float64
	speed       float64
	mode        models.Mode
	renderState models.RenderState
	position    models.Point
	successor   int

	params *Params
}

func newVehicle(id int, angle, speed float64, p *Params) *Vehicle {
	v := &Vehicle{
		id:          id,
		angle:       geometry.NormalizeDegrees(angle),
		speed:       geometry.Clamp(speed, p.MinSpeed, p.MaxSpeed()),
		mode:        models.ModeOnRing,
		renderState: models.RenderNormal,
		params:      p,
	}
	v.updatePosition()
	return v
}

func (v *Vehicle) ID() int                         { return v.id }
func (v *Vehicle) Angle() float64                  { return v.angle }
func (v *Vehicle) Speed() float64                  { return v.speed }
func (v *Vehicle) Mode() models.Mode               { return v.mode }
func (v *Vehicle) RenderState() models.RenderState { return v.renderState }
func (v *Vehicle) Position() models.Point          { return v.position }

// SuccessorIndex is the index of the vehicle immediately ahead.
func (v *Vehicle) SuccessorIndex() int { return v.successor }

// Advance moves the vehicle by one tick. successorAngle is the angle of the
// vehicle ahead as the caller chose to observe it.
func (v *Vehicle) Advance(successorAngle float64, rng Source) {
	p := v.params
	if v.mode == models.ModeOnRamp {
		v.angle += p.RampSpeed
		if v.angle >= p.RampSpan {
			// Rejoins at the ring's zero angle, not where it left.
			v.mode = models.ModeOnRing
			v.angle = 0
		}
	} else {
		if geometry.AngularGap(v.angle, successorAngle) < p.CongestionThreshold {
			v.renderState = models.RenderCongested
			v.speed = geometry.Clamp(v.speed-p.DecelStep, p.MinSpeed, p.MaxSpeed())
		} else {
			v.renderState = models.RenderNormal
			v.speed = geometry.Clamp(v.speed+p.AccelStep, p.MinSpeed, p.MaxSpeed())
		}
		v.angle = geometry.NormalizeDegrees(v.angle + v.speed)
	}

	// One draw per tick in either mode; it only matters on the ring.
	if rng.Float64() < p.ExitProbability && v.mode == models.ModeOnRing {
		v.enterRamp()
	}

	v.updatePosition()
}

// enterRamp diverts the vehicle. The ramp branch applies from the next tick
// on and progress starts at zero.
func (v *Vehicle) enterRamp() {
	v.mode = models.ModeOnRamp
	v.angle = 0
}

// Ramp vehicles are drawn on the ring radius at their progress angle.
func (v *Vehicle) updatePosition() {
	v.position = geometry.PointOnCircle(v.params.Center, v.params.Radius, v.angle)
}

// State returns a read-only view for renderers.
func (v *Vehicle) State() models.VehicleState {
	return models.VehicleState{
		ID:          v.id,
		Angle:       v.angle,
		Speed:       v.speed,
		Mode:        v.mode,
		RenderState: v.renderState,
		Position:    v.position,
		Color:       models.ColorFor(v.renderState),
	}
}
