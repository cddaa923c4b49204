package cache

import (
	"context"
	"testing"
	"time"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || value != "v" {
		t.Fatalf("Get = (%q, %v, %v)", value, ok, err)
	}

	if _, ok, _ := store.Get(ctx, "missing"); ok {
		t.Fatal("missing key must not be found")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", "v", -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expired key must not be served")
	}

	if purged := store.PurgeExpired(); purged != 1 {
		t.Fatalf("expected 1 purged entry, got %d", purged)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Set(ctx, "k", "v", time.Minute)
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("deleted key must not be found")
	}
}

func TestAnalysisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewAnalysisCache(NewMemoryStore())

	analysis := &entities.VideoAnalysis{
		VideoID: "vid123",
		Title:   "Intro to Go",
		Summary: entities.Summary{CleanSummary: "A summary."},
	}
	if err := c.SetAnalysis(ctx, analysis, time.Minute); err != nil {
		t.Fatalf("SetAnalysis failed: %v", err)
	}

	got, err := c.GetAnalysis(ctx, "vid123")
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if got == nil || got.Title != "Intro to Go" || got.Summary.CleanSummary != "A summary." {
		t.Fatalf("unexpected cached analysis: %+v", got)
	}

	if miss, err := c.GetAnalysis(ctx, "other"); err != nil || miss != nil {
		t.Fatalf("miss must be (nil, nil), got (%v, %v)", miss, err)
	}

	if err := c.DeleteAnalysis(ctx, "vid123"); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}
	if got, _ := c.GetAnalysis(ctx, "vid123"); got != nil {
		t.Fatal("evicted analysis must not be served")
	}
}

func TestAnalysisCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewAnalysisCache(store)

	_ = store.Set(ctx, analysisKey("vid123"), "not json", time.Minute)

	if _, err := c.GetAnalysis(ctx, "vid123"); err == nil {
		t.Fatal("corrupt entry must surface an error")
	}
	if _, ok, _ := store.Get(ctx, analysisKey("vid123")); ok {
		t.Fatal("corrupt entry must be evicted")
	}
}
