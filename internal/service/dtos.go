package service

import "github.com/supportlens/ticketlens/internal/ticket"

// ListResult is a filtered, paginated ticket page. Total counts the filtered
// set before pagination.
type ListResult struct {
	Total int              `json:"total"`
	Items []TicketListItem `json:"items"`
}

// TicketListItem is one row of the browsing view.
type TicketListItem struct {
	TicketID      int              `json:"ticket_id"`
	Vertical      string           `json:"vertical"`
	Product       string           `json:"product"`
	Status        string           `json:"status"`
	Priority      string           `json:"priority"`
	Source        string           `json:"source"`
	IsSev1        bool             `json:"is_sev1"`
	Patterns      []ticket.Pattern `json:"patterns"`
	DetectedCount int              `json:"detected_count"`
	Created       string           `json:"created"`
	Updated       string           `json:"updated"`
	Flags         ticket.Flags     `json:"flags"`
}

// FilterOptions are the distinct dropdown values, always computed over the
// unfiltered dataset so narrowing a filter never shrinks the choices.
type FilterOptions struct {
	Verticals  []string `json:"verticals"`
	Products   []string `json:"products"`
	Statuses   []string `json:"statuses"`
	Priorities []string `json:"priorities"`
}

// Summary are the headline figures over the working set.
type Summary struct {
	TotalTickets          int     `json:"total_tickets"`
	TicketsWithPatterns   int     `json:"tickets_with_patterns"`
	DetectionRate         float64 `json:"detection_rate"`
	Sev1Count             int     `json:"sev1_count"`
	Sev1Rate              float64 `json:"sev1_rate"`
	TotalPatternsDetected int     `json:"total_patterns_detected"`
	AvgPatternsPerTicket  float64 `json:"avg_patterns_per_ticket"`
}

// PatternStat is the working-set footprint of one vocabulary pattern.
type PatternStat struct {
	Pattern    ticket.Pattern `json:"pattern"`
	Label      string         `json:"label"`
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
}

// PatternCount is a pattern with its ticket count, used for top-pattern
// truncations.
type PatternCount struct {
	Pattern ticket.Pattern `json:"pattern"`
	Label   string         `json:"label"`
	Count   int            `json:"count"`
}

// VerticalStat is the per-vertical breakdown.
type VerticalStat struct {
	Vertical      string                 `json:"vertical"`
	Count         int                    `json:"count"`
	Percentage    float64                `json:"percentage"`
	PatternCounts map[ticket.Pattern]int `json:"pattern_counts"`
	AvgPatterns   float64                `json:"avg_patterns"`
}

// StatusStat is the per-status breakdown.
type StatusStat struct {
	Status      string  `json:"status"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	AvgPatterns float64 `json:"avg_patterns"`
}

// SourceStat is the per-source breakdown.
type SourceStat struct {
	Source     string  `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Sev1Count  int     `json:"sev1_count"`
}

// PriorityStat is the per-priority breakdown.
type PriorityStat struct {
	Priority    string  `json:"priority"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	AvgPatterns float64 `json:"avg_patterns"`
}

// ProductStat is the per-product breakdown. Vertical is taken from the first
// ticket of the group in dataset load order.
type ProductStat struct {
	Product         string         `json:"product"`
	Vertical        string         `json:"vertical"`
	TotalTickets    int            `json:"total_tickets"`
	DetectedTickets int            `json:"detected_tickets"`
	DetectionRate   float64        `json:"detection_rate"`
	TopPatterns     []PatternCount `json:"top_patterns"`
}

// PatternPair counts joint presence of two distinct patterns.
type PatternPair struct {
	PatternA ticket.Pattern `json:"pattern_a"`
	PatternB ticket.Pattern `json:"pattern_b"`
	Count    int            `json:"count"`
}

// DistributionBucket is one bar of the tickets-by-pattern-count histogram.
type DistributionBucket struct {
	PatternCount int `json:"pattern_count"`
	TicketCount  int `json:"ticket_count"`
}

// HardMetricsSummary aggregates the deterministic metrics over the working
// set. Averages and medians are nil when no ticket contributed a value; the
// caller must keep "no data" distinct from zero. Hour figures are converted
// from seconds after aggregation.
//
// FCR and escalation rates are percentages over tickets that have a
// hard-metrics record, while the alert counts run over the whole working
// set. The asymmetry is part of the established contract.
type HardMetricsSummary struct {
	TicketsWithHardMetrics int `json:"tickets_with_hard_metrics"`

	AvgInitialResponseHours    *float64 `json:"avg_initial_response_hours"`
	MedianInitialResponseHours *float64 `json:"median_initial_response_hours"`
	AvgResolutionHours         *float64 `json:"avg_resolution_hours"`
	MedianResolutionHours      *float64 `json:"median_resolution_hours"`
	AvgTimeAtL1Hours           *float64 `json:"avg_time_at_l1_hours"`
	MedianTimeAtL1Hours        *float64 `json:"median_time_at_l1_hours"`
	AvgTimeAtL2Hours           *float64 `json:"avg_time_at_l2_hours"`
	MedianTimeAtL2Hours        *float64 `json:"median_time_at_l2_hours"`
	AvgTimeOnHoldHours         *float64 `json:"avg_time_on_hold_hours"`
	MedianTimeOnHoldHours      *float64 `json:"median_time_on_hold_hours"`

	FCRRate        float64 `json:"fcr_rate"`
	EscalationRate float64 `json:"escalation_rate"`

	SlowResponseCount   int `json:"slow_response_count"`
	LongResolutionCount int `json:"long_resolution_count"`
	ExtendedHoldCount   int `json:"extended_hold_count"`
	LargeGapCount       int `json:"large_gap_count"`

	TicketsWithInteractions int      `json:"tickets_with_interactions"`
	AvgTotalInteractions    *float64 `json:"avg_total_interactions"`
	AvgAIInteractions       *float64 `json:"avg_ai_interactions"`
	AvgEmployeeInteractions *float64 `json:"avg_employee_interactions"`
	FrustrationCount        int      `json:"frustration_count"`
}

// AnalyticsReport is the full analytics payload for one dataset and filter.
type AnalyticsReport struct {
	FilterOptions FilterOptions        `json:"filter_options"`
	Summary       Summary              `json:"summary"`
	PatternStats  []PatternStat        `json:"pattern_stats"`
	VerticalStats []VerticalStat       `json:"vertical_stats"`
	StatusStats   []StatusStat         `json:"status_stats"`
	SourceStats   []SourceStat         `json:"source_stats"`
	PriorityStats []PriorityStat       `json:"priority_stats"`
	ProductStats  []ProductStat        `json:"product_stats"`
	CoOccurrence  []PatternPair        `json:"co_occurrence"`
	Distribution  []DistributionBucket `json:"distribution"`
	HardMetrics   HardMetricsSummary   `json:"hard_metrics"`
}
