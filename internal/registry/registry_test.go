package registry_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/registry"
	"github.com/arvika/pdfchat/internal/segments"
)

type countingEmbedder struct {
	batchCalls int32
	queryCalls int32
}

func (c *countingEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	atomic.AddInt32(&c.queryCalls, 1)
	return []float32{0, 1}, nil
}

func (c *countingEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	atomic.AddInt32(&c.batchCalls, 1)
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

type noopLLM struct{}

func (noopLLM) Generate(ctx context.Context, query string, matches []string) (string, error) {
	return "answer", nil
}
func (noopLLM) Summarize(ctx context.Context, text string) (string, error) {
	return "summary", nil
}
func (noopLLM) Complete(ctx context.Context, instruction string, prompt string) (string, error) {
	return "overview", nil
}

type nullSummaryStore struct{}

func (nullSummaryStore) SaveRecord(ctx context.Context, hash, key string, rec docmodel.SummaryRecord) error {
	return nil
}
func (nullSummaryStore) LoadRecords(ctx context.Context, hash string) (map[string]docmodel.SummaryRecord, error) {
	return map[string]docmodel.SummaryRecord{}, nil
}

const knownHash = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

func rawSegments() []docmodel.Segment {
	return []docmodel.Segment{
		{PageNumber: 1, Type: docmodel.Text, Text: "  some segment text with enough substance  "},
		{PageNumber: 2, Type: docmodel.Text, Text: "another segment on the following page"},
	}
}

func newRegistry(t *testing.T, em *countingEmbedder) *registry.Registry {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PDFCHAT_STORAGE_DIR", dir)
	return registry.New(segments.NewStore(dir), nullSummaryStore{}, em, noopLLM{})
}

func TestResolveOrCreate_IdempotentByContent(t *testing.T) {
	em := &countingEmbedder{}
	reg := newRegistry(t, em)
	ctx := context.Background()

	first, err := reg.ResolveOrCreate(ctx, knownHash, rawSegments())
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if got := atomic.LoadInt32(&em.batchCalls); got == 0 {
		t.Fatal("first resolve must embed")
	}
	embedsAfterFirst := atomic.LoadInt32(&em.batchCalls)

	second, err := reg.ResolveOrCreate(ctx, knownHash, rawSegments())
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if second != first {
		t.Error("same content must resolve to the same handle")
	}
	if got := atomic.LoadInt32(&em.batchCalls); got != embedsAfterFirst {
		t.Errorf("re-resolving known content must not embed, calls went %d -> %d", embedsAfterFirst, got)
	}

	// normalization assigned ordinal keys and trimmed text
	if first.Segments[0].Key != 0 || first.Segments[1].Key != 1 {
		t.Errorf("segment keys not ordinal: %d, %d", first.Segments[0].Key, first.Segments[1].Key)
	}
	if strings.HasPrefix(first.Segments[0].Text, " ") {
		t.Error("segment text not trimmed")
	}
}

func TestLookup_UnknownHash(t *testing.T) {
	reg := newRegistry(t, &countingEmbedder{})

	_, err := reg.Lookup(context.Background(), "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc")
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookup_RehydratesFromDisk(t *testing.T) {
	em := &countingEmbedder{}
	dir := t.TempDir()
	t.Setenv("PDFCHAT_STORAGE_DIR", dir)
	ctx := context.Background()

	first := registry.New(segments.NewStore(dir), nullSummaryStore{}, em, noopLLM{})
	if _, err := first.ResolveOrCreate(ctx, knownHash, rawSegments()); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	embedsAfterBuild := atomic.LoadInt32(&em.batchCalls)

	// a fresh registry over the same storage simulates a process restart
	restarted := registry.New(segments.NewStore(dir), nullSummaryStore{}, em, noopLLM{})
	handle, err := restarted.Lookup(ctx, knownHash)
	if err != nil {
		t.Fatalf("lookup after restart failed: %v", err)
	}
	if got := atomic.LoadInt32(&em.batchCalls); got != embedsAfterBuild {
		t.Errorf("rehydration must reuse persisted vectors, calls went %d -> %d", embedsAfterBuild, got)
	}
	if len(handle.Segments) != 2 {
		t.Errorf("segments got %d, want 2", len(handle.Segments))
	}
	if handle.Index.Count() == 0 {
		t.Error("rehydrated index is empty")
	}
}

func TestLast_TracksMostRecentResolve(t *testing.T) {
	reg := newRegistry(t, &countingEmbedder{})
	ctx := context.Background()

	if _, err := reg.Last(ctx); !errors.Is(err, faults.ErrNotFound) {
		t.Fatal("Last before any resolve must be not found")
	}

	if _, err := reg.ResolveOrCreate(ctx, knownHash, rawSegments()); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	handle, err := reg.Last(ctx)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if handle.Hash != knownHash {
		t.Errorf("Last hash got %s, want %s", handle.Hash, knownHash)
	}
}
