package index

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
)

type stubEmbedder struct {
	onGet   func(ctx context.Context, query string) ([]float32, error)
	onBatch func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (s *stubEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if s.onGet != nil {
		return s.onGet(ctx, query)
	}
	return bucketVector(query), nil
}

func (s *stubEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if s.onBatch != nil {
		return s.onBatch(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vectors[i] = bucketVector(c)
	}
	return vectors, nil
}

func bucketVector(text string) []float32 {
	if strings.Contains(text, "alpha") {
		return []float32{1, 0}
	}
	return []float32{0, 1}
}

func TestSplitTextIntoChunks(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		limit      int
		overlap    int
		wantChunks int
	}{
		{name: "Short_Text_Single_Chunk", text: "hello world", limit: 100, overlap: 10, wantChunks: 1},
		{name: "Whitespace_Survives_Splitting", text: "   ", limit: 100, overlap: 10, wantChunks: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitTextIntoChunks(tt.text, tt.limit, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("got %d chunks, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestSplitTextIntoChunks_LongText(t *testing.T) {
	sentence := "This paragraph talks about one specific topic in detail. "
	text := strings.Repeat(sentence, 50) // ~2850 chars

	chunks := splitTextIntoChunks(text, 1000, 150)
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1000 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
		}
	}
}

func TestSplitTextIntoChunks_OversizedParts(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantIn []string
	}{
		{
			name:   "Unbroken_Token_Longer_Than_Limit",
			text:   strings.Repeat("x", 120),
			wantIn: []string{strings.Repeat("x", 20)},
		},
		{
			name:   "Long_Token_Between_Words",
			text:   "intro " + strings.Repeat("y", 250) + " outro",
			wantIn: []string{"intro", "outro", strings.Repeat("y", 90)},
		},
		{
			name:   "Two_Long_Sentences_Without_Breaks",
			text:   strings.Repeat("a", 90) + ". " + strings.Repeat("b", 90),
			wantIn: []string{strings.Repeat("a", 90), strings.Repeat("b", 90)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const limit, overlap = 100, 20

			chunks := splitTextIntoChunks(tt.text, limit, overlap)
			if len(chunks) < 2 {
				t.Fatalf("expected the text to be split, got %d chunks", len(chunks))
			}
			for i, c := range chunks {
				if len(c) > limit {
					t.Errorf("chunk %d exceeds limit: %d chars", i, len(c))
				}
			}

			// Content must survive the split; overlap may duplicate it but
			// never drop it.
			joined := strings.Join(chunks, "")
			for _, want := range tt.wantIn {
				if !strings.Contains(joined, want) {
					t.Errorf("chunks lost %q", truncateForLog(want))
				}
			}
		})
	}
}

func truncateForLog(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

func TestBuildAndQuery(t *testing.T) {
	segs := []docmodel.Segment{
		{Key: 0, PageNumber: 1, Left: 10, Top: 20, Width: 30, Height: 40, Type: docmodel.Title, Text: "alpha section heading"},
		{Key: 1, PageNumber: 2, Type: docmodel.Text, Text: "completely unrelated content"},
		{Key: 2, PageNumber: 3, Type: docmodel.Text, Text: "   "}, // empty, must be skipped
	}

	idx, err := Build(context.Background(), segs, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if idx.Count() != 2 {
		t.Fatalf("Count got %d, want 2 (empty segment skipped)", idx.Count())
	}

	hits, err := idx.Query(context.Background(), "alpha", 4, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}

	top := hits[0]
	if top.SegmentKey != 0 {
		t.Errorf("top hit segment got %d, want 0", top.SegmentKey)
	}
	if top.PageNumber != 1 {
		t.Errorf("top hit page got %d, want 1", top.PageNumber)
	}
	if top.Bbox != [4]float64{10, 20, 30, 40} {
		t.Errorf("top hit bbox got %v", top.Bbox)
	}
	if top.Type != string(docmodel.Title) {
		t.Errorf("top hit type got %q", top.Type)
	}
	if hits[0].Score < hits[1].Score {
		t.Error("hits not ordered by score")
	}
}

func TestQuery_EmptyIndex(t *testing.T) {
	idx, err := Build(context.Background(), nil, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	hits, err := idx.Query(context.Background(), "anything", 4, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Query on empty index must not error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}

func TestBuild_EmbeddingFailurePersistsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.chromem")
	em := &stubEmbedder{
		onBatch: func(ctx context.Context, chunks []string) ([][]float32, error) {
			return nil, errors.New("quota exhausted")
		},
	}

	segs := []docmodel.Segment{{Key: 0, PageNumber: 1, Type: docmodel.Text, Text: "some content"}}
	_, err := Build(context.Background(), segs, em)

	var buildErr *faults.IndexBuildError
	if !errors.As(err, &buildErr) {
		t.Fatalf("expected IndexBuildError, got %v", err)
	}
	if Exists(path) {
		t.Error("failed build must not leave an artifact on disk")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "index.chromem")

	segs := []docmodel.Segment{
		{Key: 0, PageNumber: 1, Type: docmodel.Text, Text: "alpha content lives here"},
		{Key: 1, PageNumber: 2, Type: docmodel.Text, Text: "other material entirely"},
	}
	idx, err := Build(context.Background(), segs, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Exists(path) {
		t.Fatal("artifact missing after Save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Count() != idx.Count() {
		t.Fatalf("Count after load got %d, want %d", loaded.Count(), idx.Count())
	}

	// queries against the loaded index use the persisted vectors, no embedder
	// call for documents
	hits, err := loaded.Query(context.Background(), "alpha", 1, &stubEmbedder{})
	if err != nil {
		t.Fatalf("Query after load failed: %v", err)
	}
	if len(hits) != 1 || hits[0].SegmentKey != 0 {
		t.Errorf("unexpected hits after load: %+v", hits)
	}
}
