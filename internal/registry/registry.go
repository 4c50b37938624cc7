// Package registry is the content-addressed catalogue of ingested documents.
// A document's identity is the sha256 of its bytes; re-ingesting known content
// resolves to the existing handle and never re-embeds.
package registry

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/index"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/internal/segments"
	"github.com/arvika/pdfchat/internal/summary"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// Handle bundles everything query and summary paths need for one document.
type Handle struct {
	Hash      string
	Segments  []docmodel.Segment
	Index     *index.Index
	Summaries *summary.Cache
}

type Registry struct {
	segStore *segments.Store
	sumStore docmodel.SummaryStore
	embedder embedding.Embedder
	provider llm.Provider
	logger   *logger_i.Logger

	mu       sync.Mutex
	docs     map[string]*Handle
	inflight map[string]*sync.Mutex
	lastHash string
}

func New(segStore *segments.Store, sumStore docmodel.SummaryStore, em embedding.Embedder, provider llm.Provider) *Registry {
	return &Registry{
		segStore: segStore,
		sumStore: sumStore,
		embedder: em,
		provider: provider,
		docs:     make(map[string]*Handle),
		inflight: make(map[string]*sync.Mutex),
		logger:   logger_i.NewLogger("Registry"),
	}
}

// ResolveOrCreate returns the handle for hash, building the index and
// persisting the document's artifacts on first sight of the content. Two
// concurrent uploads of the same bytes serialize on a per-hash lock so the
// index is built exactly once.
func (r *Registry) ResolveOrCreate(ctx context.Context, hash string, raw []docmodel.Segment) (*Handle, error) {
	lock := r.hashLock(hash)
	lock.Lock()
	defer lock.Unlock()

	if h, ok := r.cached(hash); ok {
		r.touch(hash)
		return h, nil
	}

	segs := segments.Normalize(raw)
	indexPath := r.indexPath(hash)

	var idx *index.Index
	var err error
	if index.Exists(indexPath) {
		// restart path: the vectors on disk are authoritative, zero embedding calls
		idx, err = index.Load(indexPath)
	} else {
		idx, err = r.build(ctx, hash, segs, indexPath)
	}
	if err != nil {
		return nil, err
	}

	if err := r.segStore.Save(hash, segs); err != nil {
		return nil, err
	}

	cache, err := summary.NewCache(ctx, hash, segs, r.sumStore, r.provider)
	if err != nil {
		return nil, err
	}

	h := &Handle{Hash: hash, Segments: segs, Index: idx, Summaries: cache}
	r.mu.Lock()
	r.docs[hash] = h
	r.lastHash = hash
	r.mu.Unlock()
	return h, nil
}

func (r *Registry) build(ctx context.Context, hash string, segs []docmodel.Segment, indexPath string) (*index.Index, error) {
	r.logger.Info("building index", "hash", hash, "segments", len(segs))
	idx, err := index.Build(ctx, segs, r.embedder)
	if err != nil {
		// nothing persisted: a later retry starts clean
		return nil, err
	}
	if err := idx.Save(indexPath); err != nil {
		return nil, err
	}
	return idx, nil
}

// Lookup resolves a known hash. Documents persisted by an earlier process are
// rehydrated from disk on first access.
func (r *Registry) Lookup(ctx context.Context, hash string) (*Handle, error) {
	lock := r.hashLock(hash)
	lock.Lock()
	defer lock.Unlock()

	if h, ok := r.cached(hash); ok {
		return h, nil
	}

	if !r.segStore.Exists(hash) || !index.Exists(r.indexPath(hash)) {
		return nil, faults.ErrNotFound
	}

	segs, err := r.segStore.Load(hash)
	if err != nil {
		return nil, err
	}
	idx, err := index.Load(r.indexPath(hash))
	if err != nil {
		return nil, err
	}
	cache, err := summary.NewCache(ctx, hash, segs, r.sumStore, r.provider)
	if err != nil {
		return nil, err
	}

	h := &Handle{Hash: hash, Segments: segs, Index: idx, Summaries: cache}
	r.mu.Lock()
	r.docs[hash] = h
	r.mu.Unlock()
	return h, nil
}

// Last returns the most recently resolved document, the implicit target of
// hashless queries.
func (r *Registry) Last(ctx context.Context) (*Handle, error) {
	r.mu.Lock()
	hash := r.lastHash
	r.mu.Unlock()
	if hash == "" {
		return nil, faults.ErrNotFound
	}
	return r.Lookup(ctx, hash)
}

func (r *Registry) cached(hash string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.docs[hash]
	return h, ok
}

func (r *Registry) touch(hash string) {
	r.mu.Lock()
	r.lastHash = hash
	r.mu.Unlock()
}

func (r *Registry) hashLock(hash string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.inflight[hash]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.inflight[hash] = l
	return l
}

func (r *Registry) indexPath(hash string) string {
	return filepath.Join(config.StoragePath(), hash, config.IndexFileName)
}
