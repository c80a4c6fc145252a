package models

import (
	"math"
	"testing"
)

func TestComputeRatio(t *testing.T) {
	tests := []struct {
		name    string
		upvotes int
		replies int
		want    float64
	}{
		{name: "Exact division", upvotes: 120, replies: 10, want: 12.0},
		{name: "Fractional", upvotes: 5, replies: 2, want: 2.5},
		{name: "Below one", upvotes: 1, replies: 4, want: 0.25},
		{name: "Zero upvotes", upvotes: 0, replies: 7, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRatio(tt.upvotes, tt.replies); got != tt.want {
				t.Errorf("ComputeRatio(%d, %d) = %v, want %v", tt.upvotes, tt.replies, got, tt.want)
			}
		})
	}
}

func TestComputeRatio_ZeroReplies(t *testing.T) {
	if got := ComputeRatio(50, 0); !math.IsInf(got, 1) {
		t.Errorf("ComputeRatio(50, 0) = %v, want +Inf", got)
	}
	// Zero engagement still yields the unbounded sentinel.
	if got := ComputeRatio(0, 0); !math.IsInf(got, 1) {
		t.Errorf("ComputeRatio(0, 0) = %v, want +Inf", got)
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(12.0); got != "12.00" {
		t.Errorf("FormatRatio(12.0) = %q, want %q", got, "12.00")
	}
	if got := FormatRatio(2.345); got != "2.35" {
		t.Errorf("FormatRatio(2.345) = %q, want %q", got, "2.35")
	}
	if got := FormatRatio(math.Inf(1)); got != "∞" {
		t.Errorf("FormatRatio(+Inf) = %q, want %q", got, "∞")
	}
}
