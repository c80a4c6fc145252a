package notifier

import (
	"math"
	"strings"
	"testing"

	"github.com/tiags/rfd-radar/internal/models"
)

func TestFormatBody(t *testing.T) {
	deal := models.Deal{
		Title:   "Great TV Deal",
		URL:     "https://forums.redflagdeals.com/great-tv-deal-1234567",
		Upvotes: 120,
		Replies: 10,
		Ratio:   12.0,
	}

	body := formatBody(deal)
	for _, want := range []string{
		"Title: Great TV Deal",
		"Upvotes: 120",
		"Replies: 10",
		"Ratio: 12.00",
		"https://forums.redflagdeals.com/great-tv-deal-1234567",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("formatBody() missing %q in:\n%s", want, body)
		}
	}
}

func TestFormatBody_UnboundedRatio(t *testing.T) {
	deal := models.Deal{Title: "Fresh Deal", Upvotes: 3, Ratio: math.Inf(1)}
	body := formatBody(deal)
	if !strings.Contains(body, "Ratio: ∞") {
		t.Errorf("formatBody() should render the unbounded sentinel, got:\n%s", body)
	}
	if strings.Contains(body, "+Inf") {
		t.Errorf("formatBody() leaked Go's +Inf formatting:\n%s", body)
	}
}
