package models

// RampStub is the short line a renderer draws where a ramp attaches.
type RampStub struct {
	Angle float64 `bson:"angle" json:"angle"`
	Start Point   `bson:"start" json:"start"`
	End   Point   `bson:"end" json:"end"`
}

// TrackInfo describes the ring geometry for renderers.
type TrackInfo struct {
	Center    Point      `bson:"center" json:"center"`
	Radius    float64    `bson:"radius" json:"radius"`
	CarRadius float64    `bson:"car_radius" json:"car_radius"`
	Ramps     []RampStub `bson:"ramps" json:"ramps"`
}
