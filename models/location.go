package models

import "time"

// Location is a resolved device/user position.
type Location struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Address        string    `json:"address"`
	AccuracyMeters float64   `json:"accuracyMeters,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
