package ticket

import (
	"encoding/json"
	"strings"
)

// Pattern identifies one of the quality-issue labels the detection pipeline
// can assign to a ticket. The vocabulary is closed: labels outside it are
// dropped during parsing, never stored.
type Pattern string

const (
	PatternAIQualityFailures Pattern = "AI_QUALITY_FAILURES"
	PatternAIWallLooping     Pattern = "AI_WALL_LOOPING"
	PatternIgnoringContext   Pattern = "IGNORING_CONTEXT"
	PatternResponseDelays    Pattern = "RESPONSE_DELAYS"
	PatternPrematureClosure  Pattern = "PREMATURE_CLOSURE"
	PatternSev1Mishandling   Pattern = "P1_SEV1_MISHANDLING"
)

// Patterns lists the vocabulary in declaration order. Aggregates that break
// ties "by declaration order" iterate this slice.
var Patterns = []Pattern{
	PatternAIQualityFailures,
	PatternAIWallLooping,
	PatternIgnoringContext,
	PatternResponseDelays,
	PatternPrematureClosure,
	PatternSev1Mishandling,
}

var patternLabels = map[Pattern]string{
	PatternAIQualityFailures: "AI Quality Failures",
	PatternAIWallLooping:     "AI Wall/Looping",
	PatternIgnoringContext:   "Ignoring Context",
	PatternResponseDelays:    "Response Delays",
	PatternPrematureClosure:  "Premature Closure",
	PatternSev1Mishandling:   "P1/SEV1 Mishandling",
}

// Label returns the human-readable display name for a pattern.
func (p Pattern) Label() string {
	if l, ok := patternLabels[p]; ok {
		return l
	}
	return string(p)
}

// KnownPattern reports whether s is part of the vocabulary.
func KnownPattern(s string) (Pattern, bool) {
	p := Pattern(strings.TrimSpace(s))
	_, ok := patternLabels[p]
	return p, ok
}

// ParseLabels parses a raw predicted-labels cell into vocabulary patterns.
// The summarizer writes a JSON array (`["RESPONSE_DELAYS"]`); older exports
// use comma-separated values. Unknown labels are dropped silently, and the
// result preserves vocabulary order with no duplicates.
func ParseLabels(raw string) []Pattern {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return nil
		}
	} else {
		parts = strings.Split(raw, ",")
	}

	seen := make(map[Pattern]bool, len(parts))
	for _, s := range parts {
		if p, ok := KnownPattern(s); ok {
			seen[p] = true
		}
	}

	var out []Pattern
	for _, p := range Patterns {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out
}
