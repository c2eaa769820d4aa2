// Package geometry holds the angle and circle helpers the ring model is
// built on. All angles are in degrees.
package geometry

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/ukydev/ring-traffic/internal/models"
)

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	a := math.Mod(deg, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// math.Mod of a tiny negative value plus 360 can round up to 360.
	if a >= FullTurn {
		a = 0
	}
	return a
}

// PointOnCircle returns the point at angleDeg on the circle of the given
// centre and radius.
func PointOnCircle(center models.Point, radius, angleDeg float64) models.Point {
	rad := Radians(angleDeg)
	return models.Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// AngularGap is the forward distance travelling from `from` to `to`, in
// [0, 360). It is not symmetric.
func AngularGap(from, to float64) float64 {
	return NormalizeDegrees(to - from)
}

// Clamp bounds x to [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}
