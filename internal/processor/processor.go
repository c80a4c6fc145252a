// Package processor sequences one invocation of the pipeline: load the seen
// set, scrape, evaluate each thread, persist qualifiers, notify, and keep
// the store bounded.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tiags/rfd-radar/internal/config"
	"github.com/tiags/rfd-radar/internal/evaluator"
	"github.com/tiags/rfd-radar/internal/models"
	"github.com/tiags/rfd-radar/internal/scraper"
	"github.com/tiags/rfd-radar/internal/validator"
)

type Processor struct {
	store    DealStore
	notifier DealNotifier
	scraper  scraper.Scraper
	eval     *evaluator.Evaluator
	validate *validator.Validator
	cfg      *config.Config
}

func New(store DealStore, n DealNotifier, s scraper.Scraper, cfg *config.Config) *Processor {
	return &Processor{
		store:    store,
		notifier: n,
		scraper:  s,
		eval: evaluator.New(evaluator.Config{
			ExclusionKeywords: cfg.ExcludeKeywords,
			RatioThreshold:    cfg.RatioThreshold,
		}),
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Run performs one full invocation. Only a fetch failure is returned as an
// error; every per-thread failure is logged and the run proceeds.
func (p *Processor) Run(ctx context.Context) error {
	// The seen set is a fast pre-filter only. If it can't be loaded the run
	// continues with an empty set; InsertIfAbsent still guards correctness.
	seen, err := p.store.SeenTitles(ctx)
	if err != nil {
		slog.Warn("Failed to load seen titles, continuing without pre-filter", "error", err)
		seen = make(map[string]struct{})
	}

	records, err := p.scraper.ScrapeTrending(ctx)
	if err != nil {
		return fmt.Errorf("scraping trending listing: %w", err)
	}

	newCount := 0
	for _, rec := range records {
		if p.processThread(ctx, rec, seen) {
			newCount++
		}
	}

	if newCount == 0 {
		slog.Info("No new deals found")
		return nil
	}
	slog.Info("New deals stored", "count", newCount)
	p.logRankedSummary(ctx)
	return nil
}

// processThread walks one record through its terminal states and reports
// whether a new deal was persisted.
func (p *Processor) processThread(ctx context.Context, rec scraper.ThreadRecord, seen map[string]struct{}) bool {
	logExtraction(rec)

	if strings.TrimSpace(rec.Title) == "" {
		slog.Debug("Deal title is missing, skipping thread")
		return false
	}

	res := p.eval.Evaluate(rec)
	if res.Excluded {
		slog.Info("Skipping deal: contains filtered keywords", "title", rec.Title)
		return false
	}
	if !res.Qualifies {
		slog.Debug("Thread does not qualify", "title", rec.Title, "ratio", models.FormatRatio(res.Ratio))
		return false
	}

	if _, ok := seen[rec.Title]; ok {
		slog.Debug("Deal already seen", "title", rec.Title)
		return false
	}

	deal := models.Deal{
		Title:   rec.Title,
		URL:     rec.URL,
		Upvotes: rec.Upvotes,
		Replies: rec.Replies,
		Ratio:   res.Ratio,
	}
	if err := p.validate.ValidateStruct(deal); err != nil {
		slog.Warn("Dropping invalid deal", "title", deal.Title, "error", err)
		return false
	}

	inserted, err := p.store.InsertIfAbsent(ctx, deal)
	if err != nil {
		// The deal was never marked seen, so it simply reappears as new on
		// a future run if it's still on the page.
		slog.Error("Database insertion error", "title", deal.Title, "error", err)
		return false
	}
	if !inserted {
		slog.Debug("Deal already stored", "title", deal.Title)
		return false
	}
	seen[deal.Title] = struct{}{}
	slog.Info("New deal persisted", "title", deal.Title, "ratio", models.FormatRatio(deal.Ratio))

	// Best-effort, after the write: a lost alert never rolls back the row.
	if err := p.notifier.Notify(ctx, deal); err != nil {
		slog.Error("Notification error", "title", deal.Title, "error", err)
	}

	p.enforceRetention(ctx)
	return true
}

// enforceRetention caps the store after a successful insert: once the row
// count exceeds the cap, the oldest batch is evicted. Failures are logged
// and never abort the run.
func (p *Processor) enforceRetention(ctx context.Context) {
	count, err := p.store.Count(ctx)
	if err != nil {
		slog.Error("Failed to count deals for retention", "error", err)
		return
	}
	if count <= p.cfg.RetentionCap {
		return
	}
	deleted, err := p.store.EvictOldest(ctx, p.cfg.EvictBatch)
	if err != nil {
		slog.Error("Failed to evict oldest deals", "error", err)
		return
	}
	slog.Info("Deleted oldest deals to maintain database size", "deleted", deleted, "cap", p.cfg.RetentionCap)
}

// logRankedSummary dumps the whole store by descending ratio. Visibility
// aid only.
func (p *Processor) logRankedSummary(ctx context.Context) {
	deals, err := p.store.DealsByRatio(ctx)
	if err != nil {
		slog.Error("Failed to load deals for summary", "error", err)
		return
	}
	slog.Info("=== Hot deals sorted by ratio ===")
	for i, d := range deals {
		slog.Info("Deal",
			"rank", i+1,
			"title", d.Title,
			"upvotes", d.Upvotes,
			"replies", d.Replies,
			"ratio", models.FormatRatio(d.Ratio),
			"link", d.URL,
		)
	}
}

func logExtraction(rec scraper.ThreadRecord) {
	if rec.Title != "" {
		slog.Debug("Found deal title", "title", rec.Title)
	} else {
		slog.Debug("Deal title is missing")
	}
	if rec.UpvotesDefaulted {
		slog.Debug("Upvotes are missing", "title", rec.Title)
	} else {
		slog.Debug("Found upvotes", "title", rec.Title, "upvotes", rec.Upvotes)
	}
	if rec.RepliesDefaulted {
		slog.Debug("Replies are missing", "title", rec.Title)
	} else {
		slog.Debug("Found replies", "title", rec.Title, "replies", rec.Replies)
	}
}
