package store

import (
	"context"
	"testing"

	"adforge/pkg/cache"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ids, err := s.Add(ctx,
		[]string{"solar research", "wind research"},
		[]map[string]string{
			{"subject": "Acme Solar", "purpose": "research"},
			{"subject": "Gale Wind", "purpose": "research"},
		}, "session-1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Fatalf("expected two distinct ids, got %v", ids)
	}

	results, err := s.Query(ctx, map[string]string{"subject": "Acme Solar"}, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	got := results[0]
	if got.Text != "solar research" || got.SessionID != "session-1" {
		t.Fatalf("got %+v", got)
	}
	if got.Distance != 0 {
		t.Fatalf("exact matches must have distance 0, got %v", got.Distance)
	}
	if got.Metadata["purpose"] != "research" {
		t.Fatalf("metadata round-trip failed: %v", got.Metadata)
	}
}

func TestQueryFilterIsExactAndConjunctive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx,
		[]string{"a", "b", "c"},
		[]map[string]string{
			{"subject": "Acme", "purpose": "research"},
			{"subject": "Acme", "purpose": "tagline"},
			{"subject": "acme", "purpose": "research"},
		}, "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	results, err := s.Query(ctx, map[string]string{"subject": "Acme", "purpose": "research"}, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 1 || results[0].Text != "a" {
		t.Fatalf("expected only the exact conjunctive match, got %+v", results)
	}
}

func TestQueryNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	meta := map[string]string{"purpose": "research"}

	for _, text := range []string{"first", "second", "third"} {
		if _, err := s.Add(ctx, []string{text}, []map[string]string{meta}, ""); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}

	results, err := s.Query(ctx, meta, 2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "third" || results[1].Text != "second" {
		t.Fatalf("expected newest first, got %q then %q", results[0].Text, results[1].Text)
	}
}

func TestQueryNoMatches(t *testing.T) {
	s := openTestStore(t)
	results, err := s.Query(context.Background(), map[string]string{"subject": "nobody"}, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no matches, got %d", len(results))
	}
}

func TestAddMetadataLengthMismatch(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Add(context.Background(), []string{"a", "b"},
		[]map[string]string{{"k": "v"}}, "")
	if err == nil {
		t.Fatal("expected an error for mismatched metadata length")
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, []string{"a", "b"}, nil, "s1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add(ctx, []string{"c"}, nil, "s2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add(ctx, []string{"d"}, nil, ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	stats, err := s.Stats(ctx, "s1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDocuments != 4 {
		t.Errorf("TotalDocuments = %d, want 4", stats.TotalDocuments)
	}
	if stats.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", stats.Sessions)
	}
	if stats.SessionDocuments != 2 {
		t.Errorf("SessionDocuments = %d, want 2", stats.SessionDocuments)
	}
}

func TestCacheTierAdapter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	key := cache.Key{Subject: "Acme", Purpose: "research"}

	if _, ok, err := s.Fetch(ctx, key); err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Persist(ctx, key, "v1"); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := s.Persist(ctx, key, "v2"); err != nil {
		t.Fatalf("persist: %v", err)
	}

	value, ok, err := s.Fetch(ctx, key)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !ok || value != "v2" {
		t.Fatalf("expected the newest value, got (%q, %v)", value, ok)
	}

	// Persisting again never removes older documents.
	results, err := s.Query(ctx, map[string]string{"subject": "Acme"}, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("the store is append-only, expected 2 documents, got %d", len(results))
	}
}
