// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	refs := []*types.PaperRef{
		{Title: "Attention Is All You Need", Authors: []string{"Ashish Vaswani"}, Year: 2017, Pages: "5998-6008", Source: "dblp", URL: "https://papers.nips.cc/paper/7181"},
		{Title: "Deep Residual Learning for Image Recognition", Year: 2016, Source: "semantic_scholar"},
	}
	for i, ref := range refs {
		if err := s.Record(ctx, ref.Title, ref); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Ref.Title != "Deep Residual Learning for Image Recognition" {
		t.Errorf("first entry = %q", entries[0].Ref.Title)
	}
	if entries[1].Ref.Pages != "5998-6008" {
		t.Errorf("pages = %q", entries[1].Ref.Pages)
	}
	if len(entries[1].Ref.Authors) != 1 || entries[1].Ref.Authors[0] != "Ashish Vaswani" {
		t.Errorf("authors = %v", entries[1].Ref.Authors)
	}
	if entries[0].ResolvedAt.IsZero() {
		t.Error("resolved_at not set")
	}
}

func TestSearch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, "attention is all you need", &types.PaperRef{Title: "Attention Is All You Need", Year: 2017}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, "resnet", &types.PaperRef{Title: "Deep Residual Learning for Image Recognition", Year: 2016}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.Search(ctx, "attention", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 1 || entries[0].Ref.Title != "Attention Is All You Need" {
		t.Errorf("search results = %+v", entries)
	}

	entries, err = s.Search(ctx, "nonexistent", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d results for nonexistent term", len(entries))
	}
}

func TestSearchWithoutFTS(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, "attention is all you need", &types.PaperRef{Title: "Attention Is All You Need", Year: 2017}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, "resnet", &types.PaperRef{Title: "Deep Residual Learning for Image Recognition", Year: 2016}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Builds without the sqlite_fts5 tag take the substring path.
	s.fts = false

	entries, err := s.Search(ctx, "Attention", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 1 || entries[0].Ref.Title != "Attention Is All You Need" {
		t.Errorf("search results = %+v", entries)
	}

	entries, err = s.Search(ctx, "nonexistent", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d results for nonexistent term", len(entries))
	}
}

func TestSchemaIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := s1.Record(context.Background(), "q", &types.PaperRef{Title: "T"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()
	entries, err := s2.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after reopen", len(entries))
	}
}
