package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := New(filepath.Join(t.TempDir(), "journal.db"))
	if err := j.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = j.Close() }()

	entries := []Entry{
		{Tool: "docs2mcp.apply_text_style", DocumentID: "d1", OpCount: 1, Fields: "bold,italic", Outcome: "ok", Time: time.Unix(100, 0)},
		{Tool: "docs2mcp.insert_text", DocumentID: "d1", OpCount: 2, Outcome: "ok", Time: time.Unix(200, 0)},
		{Tool: "docs2mcp.delete_range", DocumentID: "d2", Outcome: "INVALID_RANGE", Detail: "INVALID_RANGE: invalid range [10,5)", Time: time.Unix(300, 0)},
	}
	for _, e := range entries {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries want 3", len(got))
	}
	// Newest first.
	if got[0].Tool != "docs2mcp.delete_range" || got[0].Outcome != "INVALID_RANGE" {
		t.Fatalf("got[0]=%+v", got[0])
	}
	if got[2].Fields != "bold,italic" || got[2].OpCount != 1 {
		t.Fatalf("got[2]=%+v", got[2])
	}
	for _, e := range got {
		if e.ID == "" {
			t.Fatal("entry id not assigned")
		}
	}
}

func TestJournalInitIdempotent(t *testing.T) {
	ctx := context.Background()
	j := New(filepath.Join(t.TempDir(), "journal.db"))
	if err := j.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := j.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestJournalRecentLimit(t *testing.T) {
	ctx := context.Background()
	j := New(filepath.Join(t.TempDir(), "journal.db"))
	if err := j.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = j.Close() }()

	for i := 0; i < 5; i++ {
		if err := j.Record(ctx, Entry{Tool: "t", Outcome: "ok", Time: time.Unix(int64(i), 0)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries want 2", len(got))
	}
}
