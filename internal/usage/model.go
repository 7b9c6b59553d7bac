package usage

import "time"

// Usage is a snapshot of a user's AI call consumption for the current day.
type Usage struct {
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}

const period = 24 * time.Hour
