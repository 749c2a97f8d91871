package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabels(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected []Pattern
	}{
		{
			name:     "JSON array",
			raw:      `["RESPONSE_DELAYS", "PREMATURE_CLOSURE"]`,
			expected: []Pattern{PatternResponseDelays, PatternPrematureClosure},
		},
		{
			name:     "comma separated",
			raw:      "AI_WALL_LOOPING, IGNORING_CONTEXT",
			expected: []Pattern{PatternAIWallLooping, PatternIgnoringContext},
		},
		{
			name:     "unknown label dropped silently",
			raw:      `["RESPONSE_DELAYS", "TOTALLY_MADE_UP"]`,
			expected: []Pattern{PatternResponseDelays},
		},
		{
			name:     "duplicates collapse",
			raw:      `["RESPONSE_DELAYS", "RESPONSE_DELAYS"]`,
			expected: []Pattern{PatternResponseDelays},
		},
		{
			name:     "vocabulary order regardless of input order",
			raw:      `["P1_SEV1_MISHANDLING", "AI_QUALITY_FAILURES"]`,
			expected: []Pattern{PatternAIQualityFailures, PatternSev1Mishandling},
		},
		{
			name:     "empty cell",
			raw:      "",
			expected: nil,
		},
		{
			name:     "empty JSON array",
			raw:      "[]",
			expected: nil,
		},
		{
			name:     "malformed JSON",
			raw:      `["RESPONSE_DELAYS"`,
			expected: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLabels(tc.raw))
		})
	}
}

func TestPatternLabel(t *testing.T) {
	assert.Equal(t, "P1/SEV1 Mishandling", PatternSev1Mishandling.Label())
	assert.Equal(t, "WHATEVER", Pattern("WHATEVER").Label())
}

func TestSummaryHasPattern(t *testing.T) {
	s := &PatternSummary{Labels: []Pattern{PatternResponseDelays}}
	assert.True(t, s.HasPattern(PatternResponseDelays))
	assert.False(t, s.HasPattern(PatternAIWallLooping))
	assert.Equal(t, 1, s.DetectedCount())
}
