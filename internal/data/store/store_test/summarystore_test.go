package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/arvika/pdfchat/internal/data/redisStore"
	"github.com/arvika/pdfchat/internal/data/store"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
)

const hash = "dddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd"

func newRedisSummaryStore(t *testing.T) (*store.RedisSummaryStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestSummaryStore(redisStore.NewTestStore(client)), mr
}

func TestRedisSummaryStore_SaveAndLoad(t *testing.T) {
	s, _ := newRedisSummaryStore(t)
	ctx := context.Background()

	rec := docmodel.SummaryRecord{
		Summary:    "the gist",
		SourceText: "the original paragraph",
		Page:       3,
		Bbox:       [4]float64{1, 2, 3, 4},
	}
	if err := s.SaveRecord(ctx, hash, "7", rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	records, err := s.LoadRecords(ctx, hash)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records["7"]
	if got.Summary != rec.Summary || got.Page != rec.Page || got.Bbox != rec.Bbox {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestRedisSummaryStore_LoadUnknownHash(t *testing.T) {
	s, _ := newRedisSummaryStore(t)

	records, err := s.LoadRecords(context.Background(), hash)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestRedisSummaryStore_SkipsCorruptField(t *testing.T) {
	s, mr := newRedisSummaryStore(t)
	ctx := context.Background()

	if err := s.SaveRecord(ctx, hash, "0", docmodel.SummaryRecord{Summary: "ok"}); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	mr.HSet("summaries:"+hash, "1", "{not json")

	records, err := s.LoadRecords(ctx, hash)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (corrupt field dropped)", len(records))
	}
	if records["0"].Summary != "ok" {
		t.Errorf("surviving record mismatch: %+v", records["0"])
	}
}

func TestFileSummaryStore_SaveAndLoad(t *testing.T) {
	s := store.NewFileSummaryStore(t.TempDir())
	ctx := context.Background()

	if err := s.SaveRecord(ctx, hash, "0", docmodel.SummaryRecord{Summary: "first", Page: 1}); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if err := s.SaveRecord(ctx, hash, "1", docmodel.SummaryRecord{Summary: "second", Page: 2}); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	records, err := s.LoadRecords(ctx, hash)
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records["1"].Summary != "second" {
		t.Errorf("record mismatch: %+v", records["1"])
	}
}

func TestFileSummaryStore_LoadMissingFile(t *testing.T) {
	s := store.NewFileSummaryStore(t.TempDir())

	records, err := s.LoadRecords(context.Background(), hash)
	if err != nil {
		t.Fatalf("LoadRecords on fresh dir failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
