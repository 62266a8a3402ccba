package config

import (
	"fmt"
	"time"

	"github.com/planwise/planwise/core/model"
)

// SchedulingConfig carries the default optimizer options of the service.
// Per-request options override these field by field in the caller.
type SchedulingConfig struct {
	MinAttendees         int    `json:"min_attendees"`
	MinDurationMinutes   int    `json:"min_duration_minutes"`
	MaxDurationMinutes   int    `json:"max_duration_minutes"`
	MaxSuggestions       int    `json:"max_suggestions"`
	PrioritizeAttendance bool   `json:"prioritize_attendance"`
	Timezone             string `json:"timezone"`
}

// Validate checks the fields that cannot wait until a request arrives.
func (c SchedulingConfig) Validate() error {
	if c.MinAttendees < 0 || c.MinDurationMinutes < 0 || c.MaxDurationMinutes < 0 {
		return fmt.Errorf("scheduling thresholds must not be negative")
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// Options converts the config into engine options.
func (c SchedulingConfig) Options() (model.SchedulingOptions, error) {
	opts := model.SchedulingOptions{
		MinAttendees:         c.MinAttendees,
		MinDurationMinutes:   c.MinDurationMinutes,
		MaxDurationMinutes:   c.MaxDurationMinutes,
		MaxSuggestions:       c.MaxSuggestions,
		PrioritizeAttendance: c.PrioritizeAttendance,
	}
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return model.SchedulingOptions{}, err
		}
		opts.Location = loc
	}
	return opts.Normalized(), nil
}
