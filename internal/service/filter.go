package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/supportlens/ticketlens/internal/ticket"
)

// Filter is the composable ticket predicate shared by the list and analytics
// paths. Zero-valued criteria are no-ops; everything specified must hold.
type Filter struct {
	Vertical string `json:"vertical,omitempty"`
	Product  string `json:"product,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Source   string `json:"source,omitempty"`

	// Search matches case-insensitively against the stringified ticket id
	// and the product name.
	Search string `json:"search,omitempty"`

	Sev1Only bool `json:"sev1_only,omitempty"`

	// Patterns must all be present on the ticket (AND semantics).
	Patterns []ticket.Pattern `json:"patterns,omitempty"`
}

// FilterPatterns converts raw label strings into vocabulary patterns for a
// filter. Unknown labels are dropped, not rejected, matching the permissive
// label handling at ingestion.
func FilterPatterns(raw []string) []ticket.Pattern {
	var out []ticket.Pattern
	for _, s := range raw {
		if p, ok := ticket.KnownPattern(s); ok {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a ticket satisfies every specified criterion.
func (f Filter) Match(s *ticket.PatternSummary) bool {
	if f.Vertical != "" && s.Vertical != f.Vertical {
		return false
	}
	if f.Product != "" && s.Product != f.Product {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Priority != "" && s.Priority != f.Priority {
		return false
	}
	if f.Source != "" && s.Source != f.Source {
		return false
	}
	if f.Sev1Only && !s.IsSev1 {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		id := strconv.Itoa(s.TicketID)
		if !strings.Contains(id, q) && !strings.Contains(strings.ToLower(s.Product), q) {
			return false
		}
	}
	for _, p := range f.Patterns {
		if !s.HasPattern(p) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the working set for a filter, preserving input order.
// The list and analytics paths both go through here, so a filter always
// selects the same tickets for both views.
func ApplyFilter(records []*ticket.Record, f Filter) []*ticket.Record {
	out := make([]*ticket.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r.Summary) {
			out = append(out, r)
		}
	}
	return out
}

// Key returns a canonical string for the filter, used as a cache key
// component. Equal filters produce equal keys.
func (f Filter) Key() string {
	patterns := make([]string, 0, len(f.Patterns))
	for _, p := range ticket.Patterns {
		for _, fp := range f.Patterns {
			if fp == p {
				patterns = append(patterns, string(p))
				break
			}
		}
	}
	return fmt.Sprintf("v=%s|p=%s|st=%s|pr=%s|src=%s|q=%s|sev1=%t|pt=%s",
		f.Vertical, f.Product, f.Status, f.Priority, f.Source,
		strings.ToLower(f.Search), f.Sev1Only, strings.Join(patterns, ","))
}
