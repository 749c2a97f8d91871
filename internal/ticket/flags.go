package ticket

import "strings"

// Alert thresholds, in seconds.
const (
	slowInitialResponseThreshold = 24 * 3600
	longResolutionThreshold      = 7 * 24 * 3600
	extendedHoldThreshold        = 24 * 3600
)

// Flags are the boolean alerts derived from a ticket's metrics.
type Flags struct {
	SlowInitialResponse bool `json:"slow_initial_response"`
	LongResolution      bool `json:"long_resolution"`
	ExtendedHold        bool `json:"extended_hold"`
	WasEscalated        bool `json:"was_escalated"`
	HasLargeGaps        bool `json:"has_large_gaps"`
}

// DeriveFlags computes alert flags from a ticket's metric rows. Either row
// may be nil. An absent underlying value means the condition is not met:
// alerts under-count when data is missing, which is the contract consumers
// rely on, so absence must never be surfaced as "unknown".
func DeriveFlags(hard *HardMetrics, inter *InteractionMetrics) Flags {
	var f Flags
	if hard != nil {
		f.SlowInitialResponse = exceeds(hard.InitialResponseSeconds, slowInitialResponseThreshold)
		f.LongResolution = exceeds(hard.ResolutionSeconds, longResolutionThreshold)
		f.ExtendedHold = exceeds(hard.TimeInHoldSeconds, extendedHoldThreshold)
		f.WasEscalated = strings.Contains(strings.ToUpper(hard.LevelSolved), "L2") || hard.WasHandedToBU
	}
	if inter != nil {
		f.HasLargeGaps = inter.GapsOver48h > 0
	}
	return f
}

func exceeds(seconds *float64, threshold float64) bool {
	return seconds != nil && *seconds > threshold
}
