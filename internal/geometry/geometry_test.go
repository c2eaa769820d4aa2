package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukydev/ring-traffic/internal/models"
)

func TestPointOnCircle(t *testing.T) {
	center := models.Point{X: 640, Y: 400}

	tests := []struct {
		name  string
		angle float64
		want  models.Point
	}{
		{"zero", 0, models.Point{X: 940, Y: 400}},
		{"quarter", 90, models.Point{X: 640, Y: 700}},
		{"half", 180, models.Point{X: 340, Y: 400}},
		{"three quarters", 270, models.Point{X: 640, Y: 100}},
		{"negative wraps", -90, models.Point{X: 640, Y: 100}},
		{"beyond a turn", 450, models.Point{X: 640, Y: 700}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointOnCircle(center, 300, tt.angle)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestPointOnCircle_Pure(t *testing.T) {
	center := models.Point{X: 10, Y: -3}
	a := PointOnCircle(center, 42.5, 123.456)
	b := PointOnCircle(center, 42.5, 123.456)
	assert.Equal(t, a, b)
}

func TestAngularGap(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"ahead", 10, 50, 40},
		{"wraps forward", 350, 10, 20},
		{"behind is almost a full turn", 50, 10, 320},
		{"same angle", 90, 90, 0},
		{"full turn apart", 0, 360, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AngularGap(tt.from, tt.to), 1e-9)
		})
	}
}

func TestAngularGap_Asymmetric(t *testing.T) {
	assert.NotEqual(t, AngularGap(0, 90), AngularGap(90, 0))
	assert.InDelta(t, FullTurn, AngularGap(0, 90)+AngularGap(90, 0), 1e-9)
}

func TestAngularGap_Range(t *testing.T) {
	for from := -720.0; from <= 720; from += 37.3 {
		for to := -720.0; to <= 720; to += 41.7 {
			gap := AngularGap(from, to)
			assert.GreaterOrEqual(t, gap, 0.0)
			assert.Less(t, gap, FullTurn)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeDegrees(360))
	assert.InDelta(t, 359.5, NormalizeDegrees(-0.5), 1e-9)
	assert.Equal(t, 0.0, NormalizeDegrees(-1e-20))
	assert.InDelta(t, 1.5, NormalizeDegrees(721.5), 1e-9)
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(0.5, 1.0, 2.0))
	assert.Equal(t, 2.0, Clamp(3.0, 1.0, 2.0))
	assert.Equal(t, 1.5, Clamp(1.5, 1.0, 2.0))
	assert.Equal(t, 3, Clamp(7, 0, 3))
}
