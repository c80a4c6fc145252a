// Package evaluator holds the pure qualification logic: it sees only thread
// records and configuration, never the network or the store.
package evaluator

import (
	"strings"

	"github.com/tiags/rfd-radar/internal/models"
	"github.com/tiags/rfd-radar/internal/scraper"
)

// Config carries the tunable qualification knobs.
type Config struct {
	// ExclusionKeywords disqualify a thread title outright, regardless of
	// ratio. These are recurring low-value sources, matched as
	// case-sensitive substrings the way the forum titles them.
	ExclusionKeywords []string
	// RatioThreshold is the minimum engagement ratio, exclusive. The 2.0
	// default is a tuned weighting, not a derived constant.
	RatioThreshold float64
}

// Result is the outcome of evaluating a single thread record.
type Result struct {
	Ratio     float64
	Qualifies bool
	Excluded  bool
}

type Evaluator struct {
	cfg Config
}

func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate computes the engagement ratio and applies the keyword filter and
// threshold. A zero-reply thread is unbounded and always clears the
// threshold; that includes the zero-upvote, zero-reply case.
func (e *Evaluator) Evaluate(rec scraper.ThreadRecord) Result {
	res := Result{Ratio: models.ComputeRatio(rec.Upvotes, rec.Replies)}

	if strings.TrimSpace(rec.Title) == "" {
		return res
	}
	if e.excluded(rec.Title) {
		res.Excluded = true
		return res
	}

	res.Qualifies = res.Ratio > e.cfg.RatioThreshold
	return res
}

func (e *Evaluator) excluded(title string) bool {
	for _, keyword := range e.cfg.ExclusionKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}
