package models

// Point is a position on the drawing surface, in screen units.
type Point struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}
