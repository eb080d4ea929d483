package entity

import "time"

// RunSummary aggregates per-addon outcomes for one translation run.
// Built incrementally by the coordinator, immutable once the run finishes.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time

	Total     int
	Succeeded int
	Skipped   int
	Failed    int

	Failures map[string]string // addon id -> failure reason
	Skips    map[string]string // addon id -> skip reason
	Warnings map[string]string // addon id -> warning

	Outcomes []*Outcome
}

func NewRunSummary(runID string) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		StartedAt: time.Now(),
		Failures:  make(map[string]string),
		Skips:     make(map[string]string),
		Warnings:  make(map[string]string),
	}
}

// Add records one worker outcome.
func (s *RunSummary) Add(o *Outcome) {
	s.Total++
	s.Outcomes = append(s.Outcomes, o)

	switch o.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusSkipped:
		s.Skipped++
		s.Skips[o.Addon.ID] = o.Reason
	case StatusFailed:
		s.Failed++
		s.Failures[o.Addon.ID] = o.Reason
	}

	if o.Warning != "" {
		s.Warnings[o.Addon.ID] = o.Warning
	}
}

func (s *RunSummary) Finish() {
	s.FinishedAt = time.Now()
}

func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
