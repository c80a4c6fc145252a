package models

import (
	"fmt"
	"math"
)

// Deal represents one qualifying trending thread as stored in the deals table.
type Deal struct {
	// ID is the auto-incrementing row id assigned at insert time. It only
	// carries retention ordering, never business meaning.
	ID      int64   `validate:"-"`
	Title   string  `validate:"required"`
	URL     string  `validate:"omitempty,url"`
	Upvotes int     `validate:"gte=0"`
	Replies int     `validate:"gte=0"`
	Ratio   float64 `validate:"-"`
}

// ComputeRatio returns the engagement ratio for a thread. A thread with no
// replies is unbounded (+Inf), including the zero-upvote case.
func ComputeRatio(upvotes, replies int) float64 {
	if replies <= 0 {
		return math.Inf(1)
	}
	return float64(upvotes) / float64(replies)
}

// FormatRatio renders a ratio with two decimals. The unbounded sentinel is
// rendered as the infinity sign rather than Go's "+Inf".
func FormatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", ratio)
}
