package storage

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/tiags/rfd-radar/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertIfAbsent_Idempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	deal := models.Deal{Title: "Great TV Deal", Upvotes: 120, Replies: 10, Ratio: 12.0, URL: "https://forums.redflagdeals.com/great-tv-deal-1234567"}

	inserted, err := store.InsertIfAbsent(ctx, deal)
	if err != nil {
		t.Fatalf("InsertIfAbsent() error = %v", err)
	}
	if !inserted {
		t.Fatal("First insert should report inserted=true")
	}

	inserted, err = store.InsertIfAbsent(ctx, deal)
	if err != nil {
		t.Fatalf("Second InsertIfAbsent() error = %v", err)
	}
	if inserted {
		t.Error("Duplicate title should report inserted=false")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 row after duplicate insert, got %d", count)
	}
}

func TestSeenTitles(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Deal A", "Deal B"} {
		if _, err := store.InsertIfAbsent(ctx, models.Deal{Title: title, Ratio: 3}); err != nil {
			t.Fatalf("InsertIfAbsent(%q) error = %v", title, err)
		}
	}

	seen, err := store.SeenTitles(ctx)
	if err != nil {
		t.Fatalf("SeenTitles() error = %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("Expected 2 seen titles, got %d", len(seen))
	}
	if _, ok := seen["Deal A"]; !ok {
		t.Error("Deal A missing from seen set")
	}
	if _, ok := seen["Deal C"]; ok {
		t.Error("Deal C should not be in the seen set")
	}
}

func TestEvictOldest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 301; i++ {
		deal := models.Deal{Title: fmt.Sprintf("Deal %03d", i), Ratio: 5}
		if _, err := store.InsertIfAbsent(ctx, deal); err != nil {
			t.Fatalf("InsertIfAbsent() error = %v", err)
		}
	}

	deleted, err := store.EvictOldest(ctx, 50)
	if err != nil {
		t.Fatalf("EvictOldest() error = %v", err)
	}
	if deleted != 50 {
		t.Errorf("Expected 50 deleted rows, got %d", deleted)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 251 {
		t.Errorf("Expected 251 rows after eviction, got %d", count)
	}

	// The 50 lowest insertion-order rows are the ones gone.
	seen, err := store.SeenTitles(ctx)
	if err != nil {
		t.Fatalf("SeenTitles() error = %v", err)
	}
	if _, ok := seen["Deal 049"]; ok {
		t.Error("Deal 049 should have been evicted")
	}
	if _, ok := seen["Deal 050"]; !ok {
		t.Error("Deal 050 should have survived eviction")
	}
}

func TestEvictOldest_NonPositive(t *testing.T) {
	store := openTestStore(t)
	deleted, err := store.EvictOldest(context.Background(), 0)
	if err != nil || deleted != 0 {
		t.Errorf("EvictOldest(0) = (%d, %v), want (0, nil)", deleted, err)
	}
}

func TestDealsByRatio(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	deals := []models.Deal{
		{Title: "Middling", Upvotes: 30, Replies: 10, Ratio: 3.0},
		{Title: "Unbounded", Upvotes: 4, Replies: 0, Ratio: math.Inf(1)},
		{Title: "Top", Upvotes: 120, Replies: 10, Ratio: 12.0},
	}
	for _, d := range deals {
		if _, err := store.InsertIfAbsent(ctx, d); err != nil {
			t.Fatalf("InsertIfAbsent(%q) error = %v", d.Title, err)
		}
	}

	got, err := store.DealsByRatio(ctx)
	if err != nil {
		t.Fatalf("DealsByRatio() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 deals, got %d", len(got))
	}
	if got[0].Title != "Unbounded" {
		t.Errorf("Expected the unbounded ratio first, got %q", got[0].Title)
	}
	if !math.IsInf(got[0].Ratio, 1) {
		t.Errorf("Unbounded ratio should round-trip as +Inf, got %v", got[0].Ratio)
	}
	if got[1].Title != "Top" || got[2].Title != "Middling" {
		t.Errorf("Unexpected order: %q, %q", got[1].Title, got[2].Title)
	}
}
