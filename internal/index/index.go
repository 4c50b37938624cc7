// Package index builds and queries the per-document similarity index. Vectors
// are computed once through the injected Embedder and persisted verbatim, so a
// reload never re-embeds and recalls the exact floats it stored.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/metrics"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

const collectionName = "segments"

// Hit is one retrieval result, best match first when returned from Query.
type Hit struct {
	Content    string
	Score      float32
	SegmentKey int
	PageNumber int
	Bbox       [4]float64
	Type       string
}

type Index struct {
	db     *chromem.DB
	coll   *chromem.Collection
	logger *logger_i.Logger
}

type chunk struct {
	seg  docmodel.Segment
	ord  int
	text string
}

// precomputed marks the collection's embedding func; it must never run because
// every document and query carries its own vector.
func precomputed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("index: no embedding func, vectors are precomputed")
}

// Build embeds the indexable segments and assembles an in-memory index. No
// partial state is written anywhere; persist with Save only after Build
// returns nil error.
func Build(ctx context.Context, segments []docmodel.Segment, embedder embedding.Embedder) (*Index, error) {
	idx := &Index{
		db:     chromem.NewDB(),
		logger: logger_i.NewLogger("ContentIndex"),
	}
	coll, err := idx.db.GetOrCreateCollection(collectionName, nil, precomputed)
	if err != nil {
		return nil, &faults.IndexBuildError{Cause: err}
	}
	idx.coll = coll

	chunks := prepareChunks(segments)
	idx.logger.Debug("prepared chunks", "segments", len(segments), "chunks", len(chunks))

	for i := 0; i < len(chunks); i += config.EmbeddingBatchSize {
		end := min(i+config.EmbeddingBatchSize, len(chunks))
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.text
		}

		start := time.Now()
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		metrics.CaptureExecutionMetrics("embedding", time.Since(start))
		if err != nil {
			return nil, &faults.IndexBuildError{Cause: err}
		}
		if len(vectors) != len(batch) {
			return nil, &faults.IndexBuildError{
				Cause: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(batch)),
			}
		}

		docs := make([]chromem.Document, len(batch))
		for j, c := range batch {
			docs[j] = chromem.Document{
				ID:        uuid.New().String(),
				Content:   c.text,
				Embedding: vectors[j],
				Metadata:  chunkMetadata(c),
			}
		}
		if err := coll.AddDocuments(ctx, docs, 1); err != nil {
			return nil, &faults.IndexBuildError{Cause: err}
		}
	}

	metrics.IncrementDocumentsIndexed()
	return idx, nil
}

// prepareChunks filters out segments with no text after trimming and splits
// long segments so each entry keeps its owning segment's key and geometry.
func prepareChunks(segments []docmodel.Segment) []chunk {
	var all []chunk
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		pieces := splitTextIntoChunks(seg.Text, config.ChunkSize, config.ChunkOverlap)
		for ord, text := range pieces {
			all = append(all, chunk{seg: seg, ord: ord, text: text})
		}
	}
	return all
}

func chunkMetadata(c chunk) map[string]string {
	box := c.seg.Bbox()
	return map[string]string{
		"segment_key": c.seg.KeyString(),
		"page_number": strconv.Itoa(c.seg.PageNumber),
		"type":        string(c.seg.Type),
		"chunk_order": strconv.Itoa(c.ord),
		"left":        strconv.FormatFloat(box[0], 'g', -1, 64),
		"top":         strconv.FormatFloat(box[1], 'g', -1, 64),
		"width":       strconv.FormatFloat(box[2], 'g', -1, 64),
		"height":      strconv.FormatFloat(box[3], 'g', -1, 64),
	}
}

// Count reports how many entries the index holds.
func (idx *Index) Count() int {
	return idx.coll.Count()
}

// Query embeds the text and returns the k nearest entries, best first. An
// empty index yields an empty result, not an error.
func (idx *Index) Query(ctx context.Context, text string, k int, embedder embedding.Embedder) ([]Hit, error) {
	if k < 1 {
		k = config.DefaultTopK
	}
	count := idx.coll.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	start := time.Now()
	vector, err := embedder.GetEmbedding(ctx, text)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, &faults.QueryError{Cause: err}
	}

	start = time.Now()
	results, err := idx.coll.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       k,
	})
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, &faults.QueryError{Cause: err}
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, resultToHit(r))
	}
	return hits, nil
}

func resultToHit(r chromem.Result) Hit {
	key, _ := strconv.Atoi(r.Metadata["segment_key"])
	page, _ := strconv.Atoi(r.Metadata["page_number"])
	left, _ := strconv.ParseFloat(r.Metadata["left"], 64)
	top, _ := strconv.ParseFloat(r.Metadata["top"], 64)
	width, _ := strconv.ParseFloat(r.Metadata["width"], 64)
	height, _ := strconv.ParseFloat(r.Metadata["height"], 64)

	return Hit{
		Content:    r.Content,
		Score:      r.Similarity,
		SegmentKey: key,
		PageNumber: page,
		Bbox:       [4]float64{left, top, width, height},
		Type:       r.Metadata["type"],
	}
}

// Save exports the index to path atomically. A crash mid-export leaves either
// the previous artifact or none, never a torn file.
func (idx *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return &faults.IndexBuildError{Cause: err}
	}
	tmp := path + ".tmp"
	if err := idx.db.ExportToFile(tmp, false, "", collectionName); err != nil {
		return &faults.IndexBuildError{Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &faults.IndexBuildError{Cause: err}
	}
	return nil
}

// Load restores a persisted index without invoking any embedding provider.
func Load(path string) (*Index, error) {
	db := chromem.NewDB()
	if err := db.ImportFromFile(path, ""); err != nil {
		return nil, err
	}
	coll := db.GetCollection(collectionName, precomputed)
	if coll == nil {
		return nil, fmt.Errorf("index artifact %s has no %s collection", path, collectionName)
	}
	return &Index{
		db:     db,
		coll:   coll,
		logger: logger_i.NewLogger("ContentIndex"),
	}, nil
}

// Exists reports whether a persisted artifact is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
