package models

import "time"

// SweepStats summarises one pass of a background sweep.
type SweepStats struct {
	Name      string    `json:"name"`
	RanAt     time.Time `json:"ranAt"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
}
