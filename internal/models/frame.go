package models

import (
	"time"
)

// Frame is the state of the whole ring after one tick.
type Frame struct {
	RunID     string         `bson:"run_id" json:"run_id"`
	Number    uint64         `bson:"number" json:"number"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Vehicles  []VehicleState `bson:"vehicles" json:"vehicles"`
	Stats     Stats          `bson:"stats" json:"stats"`
}

// Stats aggregates a frame for logging and dashboards.
type Stats struct {
	Congested int     `bson:"congested" json:"congested"`
	OnRamp    int     `bson:"on_ramp" json:"on_ramp"`
	MeanSpeed float64 `bson:"mean_speed" json:"mean_speed"`
}

// ComputeStats summarises a list of vehicle states.
func ComputeStats(vehicles []VehicleState) Stats {
	var st Stats
	if len(vehicles) == 0 {
		return st
	}
	total := 0.0
	for _, v := range vehicles {
		if v.RenderState == RenderCongested {
			st.Congested++
		}
		if v.Mode == ModeOnRamp {
			st.OnRamp++
		}
		total += v.Speed
	}
	st.MeanSpeed = total / float64(len(vehicles))
	return st
}
