package schedule

import "errors"

// ErrNoAvailability is returned when the requested scope carries no usable
// availability at all. Callers must be able to distinguish "nothing to
// schedule" from "no good slot found", so this is never silently defaulted
// to an empty result.
var ErrNoAvailability = errors.New("no availability data for requested scope")

// ErrInvalidOptions is returned when scheduling options fail validation.
var ErrInvalidOptions = errors.New("invalid scheduling options")
