package store

import (
	"context"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/supportlens/ticketlens/internal/ticket"
)

// Store loads the tabular ticket sources and caches them by resolved path
// for the life of the process. Sources are immutable snapshots: a path is
// read at most once per cache generation, and loads never fail — a missing
// or corrupt source degrades to an empty mapping.
type Store struct {
	logger *zap.Logger

	mu        sync.Mutex
	summaries map[string][]*ticket.PatternSummary
	hard      map[string]map[int]*ticket.HardMetrics
	inter     map[string]map[int]*ticket.InteractionMetrics
}

// New creates an empty Store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:    logger.Named("store"),
		summaries: make(map[string][]*ticket.PatternSummary),
		hard:      make(map[string]map[int]*ticket.HardMetrics),
		inter:     make(map[string]map[int]*ticket.InteractionMetrics),
	}
}

// Dataset is one immutable snapshot of the three sources. Summaries keep the
// source row order so iteration is reproducible across queries.
type Dataset struct {
	Summaries    []*ticket.PatternSummary
	Hard         map[int]*ticket.HardMetrics
	Interactions map[int]*ticket.InteractionMetrics
}

// Records joins the snapshot into per-ticket views, left-outer from the
// summary side, preserving summary order.
func (d *Dataset) Records() []*ticket.Record {
	out := make([]*ticket.Record, 0, len(d.Summaries))
	for _, s := range d.Summaries {
		out = append(out, &ticket.Record{
			Summary:      s,
			Hard:         d.Hard[s.TicketID],
			Interactions: d.Interactions[s.TicketID],
		})
	}
	return out
}

// LoadDataset loads the three sources, reading each concurrently on a cache
// miss. The I/O runs outside the cache lock, so two first-time loads of the
// same path may both read the file; the results are structurally identical
// and the last store wins.
func (s *Store) LoadDataset(ctx context.Context, summaryPath, hardPath, interPath string) *Dataset {
	ds := &Dataset{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds.Summaries = s.LoadSummaries(summaryPath)
		return nil
	})
	g.Go(func() error {
		ds.Hard = s.LoadHardMetrics(hardPath)
		return nil
	})
	g.Go(func() error {
		ds.Interactions = s.LoadInteractions(interPath)
		return nil
	})
	_ = g.Wait()

	return ds
}

// LoadSummaries loads the pattern-summary source, cached by resolved path.
func (s *Store) LoadSummaries(path string) []*ticket.PatternSummary {
	key := resolve(path)

	s.mu.Lock()
	if cached, ok := s.summaries[key]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	var diag decodeDiag
	rows := readRows(key)
	out := make([]*ticket.PatternSummary, 0, len(rows))
	for _, r := range rows {
		id, ok := r.ticketID("ticket_id")
		if !ok {
			continue
		}
		out = append(out, &ticket.PatternSummary{
			TicketID: id,
			Vertical: r.cell("vertical"),
			Product:  r.cell("Product"),
			Status:   r.cell("Status"),
			Priority: r.cell("Priority"),
			Source:   r.cell("source"),
			IsSev1:   r.flag("isSev1"),
			Labels:   ticket.ParseLabels(r.cell("predicted_labels")),
			Created:  r.cell("Ticket Created"),
			Updated:  r.cell("Ticket Updated"),
		})
	}
	s.logLoad("summaries", key, len(out), diag)

	s.mu.Lock()
	s.summaries[key] = out
	s.mu.Unlock()
	return out
}

// LoadHardMetrics loads the hard-metrics source, cached by resolved path.
func (s *Store) LoadHardMetrics(path string) map[int]*ticket.HardMetrics {
	key := resolve(path)

	s.mu.Lock()
	if cached, ok := s.hard[key]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	var diag decodeDiag
	rows := readRows(key)
	out := make(map[int]*ticket.HardMetrics, len(rows))
	for _, r := range rows {
		id, ok := r.ticketID("Ticket ID")
		if !ok {
			continue
		}
		out[id] = &ticket.HardMetrics{
			TicketID:                  id,
			InitialResponseSeconds:    r.seconds("initialResponseTime", &diag),
			ResolutionSeconds:         r.seconds("resolutionTime", &diag),
			TimeInNewSeconds:          r.seconds("timeSpentInNew", &diag),
			TimeInOpenSeconds:         r.seconds("timeSpentInOpen", &diag),
			TimeInHoldSeconds:         r.seconds("timeSpentInHold", &diag),
			TimeInPendingSeconds:      r.seconds("timeSpentInPending", &diag),
			TimeOpenL1Seconds:         r.seconds("timeSpentOpenL1", &diag),
			TimeOpenL2Seconds:         r.seconds("timeSpentOpenL2", &diag),
			TimeOpenUnassignedSeconds: r.seconds("timeSpentOpenUnassigned", &diag),
			LevelSolved:               r.cell("Level Solved"),
			WasHandedToBU:             r.flag("was_handed_to_bu"),
			FCR:                       r.flag("FCR"),
			FCRPlus:                   r.flag("fcrPlus"),
			L2FCR:                     r.flag("l2Fcr"),
			Created:                   r.cell("Ticket Created"),
			Solved:                    r.cell("Ticket Solved"),
			Closed:                    r.cell("Ticket Closed"),
			NPSScore:                  r.score("npsScore", &diag),
			CSATScore:                 r.score("csatScore", &diag),
		}
	}
	s.logLoad("hard_metrics", key, len(out), diag)

	s.mu.Lock()
	s.hard[key] = out
	s.mu.Unlock()
	return out
}

// LoadInteractions loads the interaction-metrics source, cached by resolved
// path.
func (s *Store) LoadInteractions(path string) map[int]*ticket.InteractionMetrics {
	key := resolve(path)

	s.mu.Lock()
	if cached, ok := s.inter[key]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	var diag decodeDiag
	rows := readRows(key)
	out := make(map[int]*ticket.InteractionMetrics, len(rows))
	for _, r := range rows {
		id, ok := r.ticketID("ticket_id")
		if !ok {
			continue
		}
		out[id] = &ticket.InteractionMetrics{
			TicketID:                id,
			AICount:                 r.count("ai_count", &diag),
			EmployeeCount:           r.count("employee_count", &diag),
			CustomerCount:           r.count("customer_count", &diag),
			TotalInteractions:       r.count("total_interactions", &diag),
			AtlasCount:              r.count("atlas_count", &diag),
			HermesCount:             r.count("hermes_count", &diag),
			TimeToFirstHumanSeconds: r.seconds("time_to_first_human_seconds", &diag),
			TimeToFirstAISeconds:    r.seconds("time_to_first_ai_seconds", &diag),
			MaxGapSeconds:           r.seconds("max_gap_seconds", &diag),
			GapsOver24h:             r.count("gaps_over_24h", &diag),
			GapsOver48h:             r.count("gaps_over_48h", &diag),
			MaxConsecutiveAI:        r.count("max_consecutive_ai", &diag),
			AIOnlyBeforeHuman:       r.flag("ai_only_before_human"),
			HasFrustrationKeywords:  r.flag("has_customer_frustration_keywords"),
			HasPreviousTicketRef:    r.flag("has_previous_ticket_reference"),
			HasRepeatedInfoRequest:  r.flag("has_repeated_info_request"),
		}
	}
	s.logLoad("interactions", key, len(out), diag)

	s.mu.Lock()
	s.inter[key] = out
	s.mu.Unlock()
	return out
}

// Invalidate drops the cached mappings for a path, forcing the next load to
// re-read the source.
func (s *Store) Invalidate(path string) {
	key := resolve(path)
	s.mu.Lock()
	delete(s.summaries, key)
	delete(s.hard, key)
	delete(s.inter, key)
	s.mu.Unlock()
}

// InvalidateAll drops every cached mapping.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.summaries = make(map[string][]*ticket.PatternSummary)
	s.hard = make(map[string]map[int]*ticket.HardMetrics)
	s.inter = make(map[string]map[int]*ticket.InteractionMetrics)
	s.mu.Unlock()
}

func (s *Store) logLoad(source, path string, rows int, diag decodeDiag) {
	if rows == 0 {
		s.logger.Warn("source loaded empty",
			zap.String("source", source),
			zap.String("path", path))
		return
	}
	s.logger.Info("source loaded",
		zap.String("source", source),
		zap.String("path", path),
		zap.Int("rows", rows),
		zap.Int("defaulted_fields", diag.defaulted))
}

func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
