package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportlens/ticketlens/internal/ticket"
)

func listFixture() []*ticket.Record {
	mk := func(id int, updated, created string, labels ...ticket.Pattern) *ticket.Record {
		return &ticket.Record{
			Summary: &ticket.PatternSummary{
				TicketID: id,
				Updated:  updated,
				Created:  created,
				Labels:   labels,
			},
		}
	}
	return []*ticket.Record{
		mk(1, "2025-03-05T00:00:00Z", "2025-03-01T00:00:00Z", ticket.PatternResponseDelays),
		mk(2, "2025-03-07T00:00:00Z", "2025-02-01T00:00:00Z"),
		mk(3, "2025-03-06T00:00:00Z", "2025-03-02T00:00:00Z",
			ticket.PatternResponseDelays, ticket.PatternPrematureClosure),
		mk(4, "2025-03-04T00:00:00Z", "2025-03-03T00:00:00Z", ticket.PatternAIWallLooping),
	}
}

func ids(items []TicketListItem) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.TicketID)
	}
	return out
}

func TestQueryTicketsDefaultSort(t *testing.T) {
	got := QueryTickets(listFixture(), Filter{}, SortByPatterns, 0, 10)

	assert.Equal(t, 4, got.Total)
	// Pattern count descending; tickets 1 and 4 tie on one pattern and keep
	// their load order.
	assert.Equal(t, []int{3, 1, 4, 2}, ids(got.Items))
}

func TestQueryTicketsUnknownSortFallsBackToPatterns(t *testing.T) {
	got := QueryTickets(listFixture(), Filter{}, SortKey("bogus"), 0, 10)
	assert.Equal(t, []int{3, 1, 4, 2}, ids(got.Items))
}

func TestQueryTicketsSortByTimestamps(t *testing.T) {
	byUpdated := QueryTickets(listFixture(), Filter{}, SortByUpdated, 0, 10)
	assert.Equal(t, []int{2, 3, 1, 4}, ids(byUpdated.Items))

	byCreated := QueryTickets(listFixture(), Filter{}, SortByCreated, 0, 10)
	assert.Equal(t, []int{4, 3, 1, 2}, ids(byCreated.Items))
}

func TestQueryTicketsPagination(t *testing.T) {
	records := make([]*ticket.Record, 0, 10)
	for i := 1; i <= 10; i++ {
		records = append(records, rec(i, "GFI", fmt.Sprintf("Product%d", i)))
	}

	page := QueryTickets(records, Filter{}, SortByPatterns, 8, 4)
	assert.Equal(t, 10, page.Total)
	require.Len(t, page.Items, 2)

	beyond := QueryTickets(records, Filter{}, SortByPatterns, 50, 4)
	assert.Equal(t, 10, beyond.Total)
	assert.Empty(t, beyond.Items)
}

func TestQueryTicketsClampsInvalidBounds(t *testing.T) {
	records := listFixture()

	negative := QueryTickets(records, Filter{}, SortByPatterns, -5, 0)
	assert.Equal(t, 4, negative.Total)
	require.Len(t, negative.Items, 1, "limit clamps up to one")
	assert.Equal(t, 3, negative.Items[0].TicketID)
}

func TestQueryTicketsTotalCountsBeforePagination(t *testing.T) {
	got := QueryTickets(listFixture(), Filter{Patterns: []ticket.Pattern{ticket.PatternResponseDelays}}, SortByPatterns, 0, 1)
	assert.Equal(t, 2, got.Total)
	assert.Len(t, got.Items, 1)
}

func TestListItemCarriesFlags(t *testing.T) {
	irt := 90000.0
	records := []*ticket.Record{
		{
			Summary: &ticket.PatternSummary{TicketID: 9},
			Hard:    &ticket.HardMetrics{InitialResponseSeconds: &irt},
		},
	}

	got := QueryTickets(records, Filter{}, SortByPatterns, 0, 10)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Flags.SlowInitialResponse)
	assert.False(t, got.Items[0].Flags.WasEscalated)
}
