package service

import (
	"sort"

	"github.com/supportlens/ticketlens/internal/store"
	"github.com/supportlens/ticketlens/internal/ticket"
)

// unknownBucket collects tickets whose dimension value is blank.
const unknownBucket = "Unknown"

const topPatternsPerProduct = 3

// ComputeAnalytics builds the full analytics report for one dataset snapshot
// and filter. Filter options come from the unfiltered set; everything else
// runs over the working set selected by the same predicate the list view
// uses.
func ComputeAnalytics(ds *store.Dataset, f Filter) *AnalyticsReport {
	working := ApplyFilter(ds.Records(), f)

	report := &AnalyticsReport{
		FilterOptions: filterOptions(ds.Summaries),
		Summary:       computeSummary(working),
		PatternStats:  patternStats(working),
		VerticalStats: verticalStats(working),
		StatusStats:   statusStats(working),
		SourceStats:   sourceStats(working),
		PriorityStats: priorityStats(working),
		ProductStats:  productStats(working),
		CoOccurrence:  coOccurrence(working),
		Distribution:  distribution(working),
		HardMetrics:   hardMetricsSummary(working),
	}
	return report
}

func filterOptions(all []*ticket.PatternSummary) FilterOptions {
	return FilterOptions{
		Verticals:  distinctValues(all, func(s *ticket.PatternSummary) string { return s.Vertical }),
		Products:   distinctValues(all, func(s *ticket.PatternSummary) string { return s.Product }),
		Statuses:   distinctValues(all, func(s *ticket.PatternSummary) string { return s.Status }),
		Priorities: distinctValues(all, func(s *ticket.PatternSummary) string { return s.Priority }),
	}
}

func distinctValues(all []*ticket.PatternSummary, get func(*ticket.PatternSummary) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range all {
		v := get(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func computeSummary(working []*ticket.Record) Summary {
	total := len(working)
	var withPatterns, sev1, totalPatterns int
	for _, r := range working {
		if r.Summary.DetectedCount() > 0 {
			withPatterns++
		}
		if r.Summary.IsSev1 {
			sev1++
		}
		totalPatterns += r.Summary.DetectedCount()
	}

	var avg float64
	if total > 0 {
		avg = round2(float64(totalPatterns) / float64(total))
	}

	return Summary{
		TotalTickets:          total,
		TicketsWithPatterns:   withPatterns,
		DetectionRate:         pct(withPatterns, total),
		Sev1Count:             sev1,
		Sev1Rate:              pct(sev1, total),
		TotalPatternsDetected: totalPatterns,
		AvgPatternsPerTicket:  avg,
	}
}

func patternStats(working []*ticket.Record) []PatternStat {
	total := len(working)
	out := make([]PatternStat, 0, len(ticket.Patterns))
	for _, p := range ticket.Patterns {
		var count int
		for _, r := range working {
			if r.Summary.HasPattern(p) {
				count++
			}
		}
		out = append(out, PatternStat{
			Pattern:    p,
			Label:      p.Label(),
			Count:      count,
			Percentage: pct(count, total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// group accumulates one dimension bucket. Buckets are created in working-set
// order so the final count-descending sort breaks ties deterministically.
type group struct {
	key      string
	records  []*ticket.Record
	patterns int
	sev1     int
	detected int
}

func groupBy(working []*ticket.Record, get func(*ticket.PatternSummary) string) []*group {
	byKey := make(map[string]*group)
	var ordered []*group
	for _, r := range working {
		key := get(r.Summary)
		if key == "" {
			key = unknownBucket
		}
		g, ok := byKey[key]
		if !ok {
			g = &group{key: key}
			byKey[key] = g
			ordered = append(ordered, g)
		}
		g.records = append(g.records, r)
		g.patterns += r.Summary.DetectedCount()
		if r.Summary.IsSev1 {
			g.sev1++
		}
		if r.Summary.DetectedCount() > 0 {
			g.detected++
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].records) > len(ordered[j].records)
	})
	return ordered
}

func (g *group) avgPatterns() float64 {
	if len(g.records) == 0 {
		return 0
	}
	return round2(float64(g.patterns) / float64(len(g.records)))
}

func verticalStats(working []*ticket.Record) []VerticalStat {
	total := len(working)
	groups := groupBy(working, func(s *ticket.PatternSummary) string { return s.Vertical })

	out := make([]VerticalStat, 0, len(groups))
	for _, g := range groups {
		counts := make(map[ticket.Pattern]int, len(ticket.Patterns))
		for _, r := range g.records {
			for _, p := range r.Summary.Labels {
				counts[p]++
			}
		}
		out = append(out, VerticalStat{
			Vertical:      g.key,
			Count:         len(g.records),
			Percentage:    pct(len(g.records), total),
			PatternCounts: counts,
			AvgPatterns:   g.avgPatterns(),
		})
	}
	return out
}

func statusStats(working []*ticket.Record) []StatusStat {
	total := len(working)
	groups := groupBy(working, func(s *ticket.PatternSummary) string { return s.Status })

	out := make([]StatusStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, StatusStat{
			Status:      g.key,
			Count:       len(g.records),
			Percentage:  pct(len(g.records), total),
			AvgPatterns: g.avgPatterns(),
		})
	}
	return out
}

func sourceStats(working []*ticket.Record) []SourceStat {
	total := len(working)
	groups := groupBy(working, func(s *ticket.PatternSummary) string { return s.Source })

	out := make([]SourceStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, SourceStat{
			Source:     g.key,
			Count:      len(g.records),
			Percentage: pct(len(g.records), total),
			Sev1Count:  g.sev1,
		})
	}
	return out
}

func priorityStats(working []*ticket.Record) []PriorityStat {
	total := len(working)
	groups := groupBy(working, func(s *ticket.PatternSummary) string { return s.Priority })

	out := make([]PriorityStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, PriorityStat{
			Priority:    g.key,
			Count:       len(g.records),
			Percentage:  pct(len(g.records), total),
			AvgPatterns: g.avgPatterns(),
		})
	}
	return out
}

func productStats(working []*ticket.Record) []ProductStat {
	groups := groupBy(working, func(s *ticket.PatternSummary) string { return s.Product })

	out := make([]ProductStat, 0, len(groups))
	for _, g := range groups {
		counts := make(map[ticket.Pattern]int, len(ticket.Patterns))
		for _, r := range g.records {
			for _, p := range r.Summary.Labels {
				counts[p]++
			}
		}

		top := make([]PatternCount, 0, len(ticket.Patterns))
		for _, p := range ticket.Patterns {
			if counts[p] > 0 {
				top = append(top, PatternCount{Pattern: p, Label: p.Label(), Count: counts[p]})
			}
		}
		sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
		if len(top) > topPatternsPerProduct {
			top = top[:topPatternsPerProduct]
		}

		out = append(out, ProductStat{
			Product: g.key,
			// First ticket of the group in load order.
			Vertical:        g.records[0].Summary.Vertical,
			TotalTickets:    len(g.records),
			DetectedTickets: g.detected,
			DetectionRate:   pct(g.detected, len(g.records)),
			TopPatterns:     top,
		})
	}
	return out
}

func coOccurrence(working []*ticket.Record) []PatternPair {
	out := make([]PatternPair, 0)
	for i := 0; i < len(ticket.Patterns); i++ {
		for j := i + 1; j < len(ticket.Patterns); j++ {
			a, b := ticket.Patterns[i], ticket.Patterns[j]
			var count int
			for _, r := range working {
				if r.Summary.HasPattern(a) && r.Summary.HasPattern(b) {
					count++
				}
			}
			if count > 0 {
				out = append(out, PatternPair{PatternA: a, PatternB: b, Count: count})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func distribution(working []*ticket.Record) []DistributionBucket {
	hist := make(map[int]int)
	for _, r := range working {
		hist[r.Summary.DetectedCount()]++
	}

	counts := make([]int, 0, len(hist))
	for c := range hist {
		counts = append(counts, c)
	}
	sort.Ints(counts)

	out := make([]DistributionBucket, 0, len(counts))
	for _, c := range counts {
		out = append(out, DistributionBucket{PatternCount: c, TicketCount: hist[c]})
	}
	return out
}

func hardMetricsSummary(working []*ticket.Record) HardMetricsSummary {
	var out HardMetricsSummary

	var initialResponse, resolution, timeL1, timeL2, timeHold []float64
	var fcrCount, escalatedCount int
	var totalInter, aiInter, employeeInter []float64

	for _, r := range working {
		flags := ticket.DeriveFlags(r.Hard, r.Interactions)
		if flags.SlowInitialResponse {
			out.SlowResponseCount++
		}
		if flags.LongResolution {
			out.LongResolutionCount++
		}
		if flags.ExtendedHold {
			out.ExtendedHoldCount++
		}
		if flags.HasLargeGaps {
			out.LargeGapCount++
		}

		if h := r.Hard; h != nil {
			out.TicketsWithHardMetrics++
			initialResponse = appendValue(initialResponse, h.InitialResponseSeconds)
			resolution = appendValue(resolution, h.ResolutionSeconds)
			timeL1 = appendValue(timeL1, h.TimeOpenL1Seconds)
			timeL2 = appendValue(timeL2, h.TimeOpenL2Seconds)
			timeHold = appendValue(timeHold, h.TimeInHoldSeconds)
			if h.FCR {
				fcrCount++
			}
			if flags.WasEscalated {
				escalatedCount++
			}
		}

		if m := r.Interactions; m != nil {
			out.TicketsWithInteractions++
			totalInter = append(totalInter, float64(m.TotalInteractions))
			aiInter = append(aiInter, float64(m.AICount))
			employeeInter = append(employeeInter, float64(m.EmployeeCount))
			if m.HasFrustrationKeywords {
				out.FrustrationCount++
			}
		}
	}

	out.AvgInitialResponseHours = secondsToHours(mean(initialResponse))
	out.MedianInitialResponseHours = secondsToHours(median(initialResponse))
	out.AvgResolutionHours = secondsToHours(mean(resolution))
	out.MedianResolutionHours = secondsToHours(median(resolution))
	out.AvgTimeAtL1Hours = secondsToHours(mean(timeL1))
	out.MedianTimeAtL1Hours = secondsToHours(median(timeL1))
	out.AvgTimeAtL2Hours = secondsToHours(mean(timeL2))
	out.MedianTimeAtL2Hours = secondsToHours(median(timeL2))
	out.AvgTimeOnHoldHours = secondsToHours(mean(timeHold))
	out.MedianTimeOnHoldHours = secondsToHours(median(timeHold))

	// Rates over tickets that have a hard-metrics record, not the working
	// set. Established contract; see HardMetricsSummary.
	out.FCRRate = pct(fcrCount, out.TicketsWithHardMetrics)
	out.EscalationRate = pct(escalatedCount, out.TicketsWithHardMetrics)

	out.AvgTotalInteractions = roundAvg(mean(totalInter))
	out.AvgAIInteractions = roundAvg(mean(aiInter))
	out.AvgEmployeeInteractions = roundAvg(mean(employeeInter))

	return out
}

func appendValue(vs []float64, v *float64) []float64 {
	if v == nil {
		return vs
	}
	return append(vs, *v)
}

func roundAvg(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}
