package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportlens/ticketlens/internal/ticket"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestLoadSummaries(t *testing.T) {
	s := New(zap.NewNop())

	got := s.LoadSummaries(testPath("summary.csv"))
	require.Len(t, got, 4, "rows with invalid ids must be dropped")

	assert.Equal(t, 101, got[0].TicketID)
	assert.Equal(t, "IgniteTech", got[0].Vertical)
	assert.Equal(t, "Jive", got[0].Product)
	assert.Equal(t, "email", got[0].Source)
	assert.Equal(t, []ticket.Pattern{ticket.PatternResponseDelays}, got[0].Labels)
	assert.Equal(t, "2025-03-05T12:00:00Z", got[0].Updated)

	assert.Empty(t, got[1].Labels)
	assert.Equal(t, 0, got[1].DetectedCount())

	// Unknown label excluded, known ones kept, sev1 parsed.
	assert.Equal(t, 103, got[2].TicketID)
	assert.Equal(t, []ticket.Pattern{ticket.PatternResponseDelays, ticket.PatternPrematureClosure}, got[2].Labels)
	assert.Equal(t, 2, got[2].DetectedCount())
	assert.True(t, got[2].IsSev1)

	// Blank classification fields survive as empty strings, truthy sev1 text parses.
	assert.Equal(t, 104, got[3].TicketID)
	assert.Equal(t, "", got[3].Vertical)
	assert.True(t, got[3].IsSev1)
}

func TestLoadHardMetrics(t *testing.T) {
	s := New(zap.NewNop())

	got := s.LoadHardMetrics(testPath("hard.csv"))
	require.Len(t, got, 3, "ticket id 0 must be dropped")

	h101 := got[101]
	require.NotNil(t, h101)
	require.NotNil(t, h101.InitialResponseSeconds)
	assert.Equal(t, 90000.0, *h101.InitialResponseSeconds)
	assert.Nil(t, h101.TimeOpenL2Seconds, "nan cell decodes to absent")
	assert.True(t, h101.FCR)
	assert.False(t, h101.WasHandedToBU)
	require.NotNil(t, h101.NPSScore)
	assert.Equal(t, 8.0, *h101.NPSScore)

	h102 := got[102]
	require.NotNil(t, h102)
	assert.Nil(t, h102.ResolutionSeconds, "empty cell decodes to absent")
	assert.Nil(t, h102.TimeInHoldSeconds)
	assert.True(t, h102.WasHandedToBU)
	assert.Equal(t, "L2 - BU", h102.LevelSolved)

	h103 := got[103]
	require.NotNil(t, h103)
	assert.Nil(t, h103.InitialResponseSeconds, "unparsable cell defaults to absent")
	assert.Nil(t, h103.ResolutionSeconds, "negative duration defaults to absent")
	assert.True(t, h103.FCR)
}

func TestLoadInteractions(t *testing.T) {
	s := New(zap.NewNop())

	got := s.LoadInteractions(testPath("interactions.csv"))
	require.Len(t, got, 3)

	i101 := got[101]
	require.NotNil(t, i101)
	assert.Equal(t, 4, i101.AICount)
	assert.Equal(t, 9, i101.TotalInteractions)
	assert.Equal(t, 1, i101.GapsOver48h)
	assert.True(t, i101.AIOnlyBeforeHuman, "count above zero reads as a set signal")
	assert.True(t, i101.HasFrustrationKeywords)
	require.NotNil(t, i101.TimeToFirstHumanSeconds)
	assert.Equal(t, 7200.0, *i101.TimeToFirstHumanSeconds)

	i103 := got[103]
	require.NotNil(t, i103)
	assert.Nil(t, i103.TimeToFirstHumanSeconds, "unparsable cell defaults to absent")
	assert.Nil(t, i103.MaxGapSeconds, "negative gap defaults to absent")
	assert.False(t, i103.AIOnlyBeforeHuman)
}

func TestLoadMissingSourceYieldsEmpty(t *testing.T) {
	s := New(zap.NewNop())

	assert.Empty(t, s.LoadSummaries(testPath("does_not_exist.csv")))
	assert.Empty(t, s.LoadHardMetrics(testPath("does_not_exist.csv")))
	assert.Empty(t, s.LoadInteractions(testPath("does_not_exist.csv")))
}

func TestLoadCachesByPath(t *testing.T) {
	s := New(zap.NewNop())

	first := s.LoadSummaries(testPath("summary.csv"))
	second := s.LoadSummaries(testPath("summary.csv"))
	require.NotEmpty(t, first)
	assert.Same(t, first[0], second[0], "repeated loads must return the cached mapping")

	s.Invalidate(testPath("summary.csv"))
	third := s.LoadSummaries(testPath("summary.csv"))
	require.NotEmpty(t, third)
	assert.NotSame(t, first[0], third[0], "invalidation must force a re-read")
}

func TestLoadDataset(t *testing.T) {
	s := New(zap.NewNop())

	ds := s.LoadDataset(context.Background(),
		testPath("summary.csv"),
		testPath("hard.csv"),
		testPath("interactions.csv"))

	require.Len(t, ds.Summaries, 4)
	assert.Len(t, ds.Hard, 3)
	assert.Len(t, ds.Interactions, 3)

	records := ds.Records()
	require.Len(t, records, 4)
	assert.Equal(t, 101, records[0].Summary.TicketID)
	assert.NotNil(t, records[0].Hard)
	assert.NotNil(t, records[0].Interactions)
	assert.Nil(t, records[3].Hard, "ticket without a hard-metrics row joins as absent")
	assert.Nil(t, records[3].Interactions)
}
