package models

// Mode selects which update rule applies to a vehicle.
type Mode string

const (
	ModeOnRing Mode = "on_ring"
	ModeOnRamp Mode = "on_ramp"
)

// IsValid checks if a mode is known
func (m Mode) IsValid() bool {
	switch m {
	case ModeOnRing, ModeOnRamp:
		return true
	default:
		return false
	}
}

// RenderState is derived every ring tick from the following-gap check.
type RenderState string

const (
	RenderNormal    RenderState = "normal"
	RenderCongested RenderState = "congested"
)

// IsValid checks if a render state is known
func (s RenderState) IsValid() bool {
	switch s {
	case RenderNormal, RenderCongested:
		return true
	default:
		return false
	}
}

// Color is an RGB triple.
type Color struct {
	R uint8 `bson:"r" json:"r"`
	G uint8 `bson:"g" json:"g"`
	B uint8 `bson:"b" json:"b"`
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
	Green = Color{G: 255}
	Red   = Color{R: 255}
)

// ColorFor returns the fill colour a renderer uses for a vehicle.
func ColorFor(s RenderState) Color {
	if s == RenderCongested {
		return Red
	}
	return Green
}

// VehicleState is a read-only view of one vehicle after a tick.
type VehicleState struct {
	ID          int         `bson:"id" json:"id"`
	Angle       float64     `bson:"angle" json:"angle"`
	Speed       float64     `bson:"speed" json:"speed"`
	Mode        Mode        `bson:"mode" json:"mode"`
	RenderState RenderState `bson:"render_state" json:"render_state"`
	Position    Point       `bson:"position" json:"position"`
	Color       Color       `bson:"color" json:"color"`
}
