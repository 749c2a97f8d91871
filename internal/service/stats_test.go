package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	cases := []struct {
		name     string
		in       []float64
		expected *float64
	}{
		{"odd length", []float64{3, 1, 2}, ptr(2.0)},
		{"even length averages middle pair", []float64{4, 1, 3, 2}, ptr(2.5)},
		{"single value", []float64{7}, ptr(7.0)},
		{"empty list is absent, not zero", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := median(tc.in)
			if tc.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.expected, *got)
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = median(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMean(t *testing.T) {
	assert.Nil(t, mean(nil))

	got := mean([]float64{1, 2, 3})
	require.NotNil(t, got)
	assert.Equal(t, 2.0, *got)
}

func TestPctGuardsZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, pct(5, 0))
	assert.Equal(t, 66.7, pct(2, 3))
	assert.Equal(t, 100.0, pct(3, 3))
}

func TestSecondsToHours(t *testing.T) {
	assert.Nil(t, secondsToHours(nil))

	got := secondsToHours(ptr(90000.0))
	require.NotNil(t, got)
	assert.Equal(t, 25.0, *got)
}

func ptr(v float64) *float64 { return &v }
