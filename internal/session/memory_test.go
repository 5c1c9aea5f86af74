package session

import (
	"context"
	"testing"
	"time"

	"github.com/careerforge/interviewer/internal/model/interview"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &interview.Session{
		ID:          "s1",
		CandidateID: "c1",
		TurnIndex:   1,
		MaxTurns:    8,
		Turns:       []interview.Turn{{Question: "Q1", Timestamp: time.Now().UTC()}},
		StartedAt:   time.Now().UTC(),
	}

	if err := store.Set(ctx, sess, time.Hour); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.CandidateID != "c1" || got.TurnIndex != 1 || len(got.Turns) != 1 {
		t.Fatalf("unexpected session after round trip: %+v", got)
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "missing"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	sess := &interview.Session{ID: "s1", TurnIndex: 1, MaxTurns: 8}
	if err := store.Set(ctx, sess, time.Minute); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	current = current.Add(2 * time.Minute)

	if _, err := store.Get(ctx, "s1"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired after TTL, got %v", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, &interview.Session{ID: "stale"}, time.Minute); err != nil {
		t.Fatalf("Set err: %v", err)
	}
	if err := store.Set(ctx, &interview.Session{ID: "fresh"}, time.Hour); err != nil {
		t.Fatalf("Set err: %v", err)
	}

	current = current.Add(10 * time.Minute)
	store.sweep()

	store.mu.RLock()
	_, staleKept := store.entries["stale"]
	_, freshKept := store.entries["fresh"]
	store.mu.RUnlock()

	if staleKept {
		t.Fatal("expected stale entry to be swept")
	}
	if !freshKept {
		t.Fatal("expected fresh entry to survive sweep")
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
}
