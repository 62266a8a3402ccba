// Package schedule implements the availability-driven scheduling optimizer.
// It turns per-participant availability into ranked meeting-time candidates
// using a sweep-line overlap search, multi-factor scoring and constraint
// filtering, and can re-derive alternatives around committed events. All
// operations are pure functions of their inputs.
package schedule
