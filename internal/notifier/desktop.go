// Package notifier delivers best-effort desktop alerts. Failures are
// reported to the caller, which logs them and moves on; a lost notification
// never unwinds the persistence write that preceded it.
package notifier

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/tiags/rfd-radar/internal/models"
)

const notificationTitle = "New Deal!"

// Notifier abstracts the alert channel.
type Notifier interface {
	Notify(ctx context.Context, deal models.Deal) error
}

// Desktop sends OS notifications through the platform notification facility.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Notify(ctx context.Context, deal models.Deal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := beeep.Notify(notificationTitle, formatBody(deal), ""); err != nil {
		return fmt.Errorf("sending desktop notification for %q: %w", deal.Title, err)
	}
	return nil
}

// formatBody renders the alert body. The thread link rides in the body since
// not every platform's toast supports a click-through URL.
func formatBody(deal models.Deal) string {
	return fmt.Sprintf("Title: %s\nUpvotes: %d\nReplies: %d\nRatio: %s\n%s",
		deal.Title, deal.Upvotes, deal.Replies, models.FormatRatio(deal.Ratio), deal.URL)
}
