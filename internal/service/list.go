package service

import (
	"sort"

	"github.com/supportlens/ticketlens/internal/ticket"
)

// SortKey selects the ticket list ordering.
type SortKey string

const (
	// SortByPatterns orders by detected-pattern count, descending, with
	// ties kept in dataset load order. This is the default.
	SortByPatterns SortKey = "patterns"

	// SortByUpdated and SortByCreated order by the raw timestamp string,
	// descending. The comparison is lexicographic, which is correct only
	// because the sources carry ISO-8601 timestamps.
	SortByUpdated SortKey = "updated"
	SortByCreated SortKey = "created"
)

// QueryTickets filters, sorts and paginates the ticket list. Offset and
// limit are clamped to valid bounds; an offset past the end yields an empty
// page with the correct total.
func QueryTickets(records []*ticket.Record, f Filter, key SortKey, offset, limit int) ListResult {
	working := ApplyFilter(records, f)

	sorted := make([]*ticket.Record, len(working))
	copy(sorted, working)

	switch key {
	case SortByUpdated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Summary.Updated > sorted[j].Summary.Updated
		})
	case SortByCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Summary.Created > sorted[j].Summary.Created
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Summary.DetectedCount() > sorted[j].Summary.DetectedCount()
		})
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}

	total := len(sorted)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]TicketListItem, 0, end-offset)
	for _, r := range sorted[offset:end] {
		items = append(items, newListItem(r))
	}

	return ListResult{Total: total, Items: items}
}

func newListItem(r *ticket.Record) TicketListItem {
	s := r.Summary
	return TicketListItem{
		TicketID:      s.TicketID,
		Vertical:      s.Vertical,
		Product:       s.Product,
		Status:        s.Status,
		Priority:      s.Priority,
		Source:        s.Source,
		IsSev1:        s.IsSev1,
		Patterns:      s.Labels,
		DetectedCount: s.DetectedCount(),
		Created:       s.Created,
		Updated:       s.Updated,
		Flags:         ticket.DeriveFlags(r.Hard, r.Interactions),
	}
}
