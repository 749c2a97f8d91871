package ticket

// PatternSummary is one row of the detection-summary source: identity and
// classification fields plus the labels the detection pipeline assigned.
type PatternSummary struct {
	TicketID int    `json:"ticket_id"`
	Vertical string `json:"vertical"`
	Product  string `json:"product"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Source   string `json:"source"`
	IsSev1   bool   `json:"is_sev1"`

	// Labels holds the detected patterns in vocabulary order.
	Labels []Pattern `json:"labels"`

	// Raw ISO-8601 timestamp strings carried through for sorting only.
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// DetectedCount returns the number of detected patterns on the ticket.
func (s *PatternSummary) DetectedCount() int {
	return len(s.Labels)
}

// HasPattern reports whether the ticket carries the given pattern.
func (s *PatternSummary) HasPattern(p Pattern) bool {
	for _, l := range s.Labels {
		if l == p {
			return true
		}
	}
	return false
}

// HardMetrics is one row of the deterministic timing/resolution source.
// Durations are seconds; a nil pointer means the value was absent in the
// source and must stay excluded from every statistic computed over it.
type HardMetrics struct {
	TicketID int `json:"ticket_id"`

	InitialResponseSeconds *float64 `json:"initial_response_seconds"`
	ResolutionSeconds      *float64 `json:"resolution_seconds"`

	TimeInNewSeconds     *float64 `json:"time_in_new_seconds"`
	TimeInOpenSeconds    *float64 `json:"time_in_open_seconds"`
	TimeInHoldSeconds    *float64 `json:"time_in_hold_seconds"`
	TimeInPendingSeconds *float64 `json:"time_in_pending_seconds"`

	TimeOpenL1Seconds         *float64 `json:"time_open_l1_seconds"`
	TimeOpenL2Seconds         *float64 `json:"time_open_l2_seconds"`
	TimeOpenUnassignedSeconds *float64 `json:"time_open_unassigned_seconds"`

	LevelSolved   string `json:"level_solved"`
	WasHandedToBU bool   `json:"was_handed_to_bu"`

	FCR     bool `json:"fcr"`
	FCRPlus bool `json:"fcr_plus"`
	L2FCR   bool `json:"l2_fcr"`

	Created string `json:"created"`
	Solved  string `json:"solved"`
	Closed  string `json:"closed"`

	NPSScore  *float64 `json:"nps_score"`
	CSATScore *float64 `json:"csat_score"`
}

// InteractionMetrics is one row of the conversation-timeline source.
type InteractionMetrics struct {
	TicketID int `json:"ticket_id"`

	AICount           int `json:"ai_count"`
	EmployeeCount     int `json:"employee_count"`
	CustomerCount     int `json:"customer_count"`
	TotalInteractions int `json:"total_interactions"`

	AtlasCount  int `json:"atlas_count"`
	HermesCount int `json:"hermes_count"`

	TimeToFirstHumanSeconds *float64 `json:"time_to_first_human_seconds"`
	TimeToFirstAISeconds    *float64 `json:"time_to_first_ai_seconds"`
	MaxGapSeconds           *float64 `json:"max_gap_seconds"`

	GapsOver24h      int `json:"gaps_over_24h"`
	GapsOver48h      int `json:"gaps_over_48h"`
	MaxConsecutiveAI int `json:"max_consecutive_ai"`

	AIOnlyBeforeHuman      bool `json:"ai_only_before_human"`
	HasFrustrationKeywords bool `json:"has_frustration_keywords"`
	HasPreviousTicketRef   bool `json:"has_previous_ticket_ref"`
	HasRepeatedInfoRequest bool `json:"has_repeated_info_request"`
}

// Record is the joined per-ticket view, left-outer from the summary side: a
// ticket always has a summary row here, while the metric rows may each be
// missing independently. Consumers must treat nil as "no data", never zero.
type Record struct {
	Summary      *PatternSummary     `json:"summary"`
	Hard         *HardMetrics        `json:"hard,omitempty"`
	Interactions *InteractionMetrics `json:"interactions,omitempty"`
}
