// Package summary produces one LLM summary per indexed segment, resumably:
// every record is persisted the moment it exists, so a crash or restart
// continues from the first segment without a record instead of starting over.
package summary

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/metrics"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// Snapshot is what callers observe. Treat Summaries as a map, not a queue:
// a racing pass may have produced a non-contiguous prefix.
type Snapshot struct {
	Summaries map[string]docmodel.SummaryRecord
	IsPartial bool
	Count     int
	Status    docmodel.SummaryStatus
	Err       string
}

type Cache struct {
	hash     string
	segments []docmodel.Segment
	store    docmodel.SummaryStore
	provider llm.Provider
	logger   *logger_i.Logger

	runMu sync.Mutex // at most one generation pass per document

	mu      sync.RWMutex // guards the fields below
	records map[string]docmodel.SummaryRecord
	status  docmodel.SummaryStatus
	lastErr string
}

// NewCache loads whatever records a previous process persisted and derives the
// starting status from them.
func NewCache(ctx context.Context, hash string, segs []docmodel.Segment, store docmodel.SummaryStore, provider llm.Provider) (*Cache, error) {
	records, err := store.LoadRecords(ctx, hash)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		hash:     hash,
		segments: segs,
		store:    store,
		provider: provider,
		records:  records,
		logger:   logger_i.NewLogger("SummaryCache").With("hash", hash),
	}
	switch {
	case len(records) == 0:
		c.status = docmodel.StatusNotStarted
	case c.missingCount() == 0:
		c.status = docmodel.StatusComplete
	default:
		c.status = docmodel.StatusInProgress
	}
	return c, nil
}

// Get returns the summary set. With partial=true it snapshots immediately and
// never starts work; otherwise it runs (or joins) generation until the pass
// finishes and then returns everything produced. A FAILED document stays
// failed for partial reads; asking for the full set retries the pass.
func (c *Cache) Get(ctx context.Context, partial bool) Snapshot {
	if partial {
		return c.snapshot()
	}
	if snap := c.snapshot(); snap.Status == docmodel.StatusComplete {
		return snap
	}

	c.runMu.Lock()
	c.runPass(ctx)
	c.runMu.Unlock()
	return c.snapshot()
}

// Resume continues generation from the first segment lacking a record. Safe to
// call repeatedly and concurrently: a second caller whose pass is already
// running returns immediately.
func (c *Cache) Resume(ctx context.Context) {
	if !c.runMu.TryLock() {
		return
	}
	defer c.runMu.Unlock()

	if c.snapshot().Status == docmodel.StatusComplete {
		return
	}
	c.runPass(ctx)
}

// runPass is the single writer; callers must hold runMu.
func (c *Cache) runPass(ctx context.Context) {
	metrics.IncrementActiveSummaryPasses()
	defer metrics.DecrementActiveSummaryPasses()

	c.mu.Lock()
	if c.status != docmodel.StatusComplete {
		c.status = docmodel.StatusInProgress
		c.lastErr = ""
	}
	c.mu.Unlock()
	c.logger.Info("summarization pass started")
	start := time.Now()

	for _, seg := range c.segments {
		if !Eligible(seg) {
			continue
		}
		key := seg.KeyString()
		if c.has(key) {
			continue
		}
		if ctx.Err() != nil {
			c.logger.Warn("summarization pass cancelled", "error", ctx.Err())
			return
		}

		callStart := time.Now()
		text, err := c.provider.Summarize(ctx, seg.Text)
		metrics.CaptureExecutionMetrics("llm_summary", time.Since(callStart))
		if err != nil {
			if faults.IsUnavailable(err) {
				c.fail(err)
				return
			}
			// one bad segment must not sink the pass
			c.logger.Error("segment summarization failed, continuing", "segment", key, "error", err)
			metrics.IncrementSummaryFailures()
			continue
		}

		rec := docmodel.SummaryRecord{
			Summary:    text,
			SourceText: seg.Text,
			Page:       seg.PageNumber,
			Bbox:       seg.Bbox(),
		}
		if err := c.store.SaveRecord(ctx, c.hash, key, rec); err != nil {
			c.logger.Error("failed to persist summary record", "segment", key, "error", err)
		}
		c.put(key, rec)
		metrics.IncrementSummariesGenerated()
	}

	c.mu.Lock()
	if c.missingCount() == 0 {
		c.status = docmodel.StatusComplete
	}
	done := c.status
	c.mu.Unlock()
	c.logger.Info("summarization pass finished", "status", done, "elapsed", time.Since(start))
}

// Eligible reports whether a segment gets a summary: real text above the
// minimum length. Shorter segments stay retrievable via the index.
func Eligible(seg docmodel.Segment) bool {
	return len(strings.TrimSpace(seg.Text)) >= config.MinSummaryChars
}

func (c *Cache) snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summaries := make(map[string]docmodel.SummaryRecord, len(c.records))
	for k, v := range c.records {
		summaries[k] = v
	}
	return Snapshot{
		Summaries: summaries,
		IsPartial: c.missingCount() > 0,
		Count:     len(summaries),
		Status:    c.status,
		Err:       c.lastErr,
	}
}

// missingCount counts eligible segments without a record; callers hold mu.
func (c *Cache) missingCount() int {
	missing := 0
	for _, seg := range c.segments {
		if !Eligible(seg) {
			continue
		}
		if _, ok := c.records[seg.KeyString()]; !ok {
			missing++
		}
	}
	return missing
}

func (c *Cache) has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.records[key]
	return ok
}

func (c *Cache) put(key string, rec docmodel.SummaryRecord) {
	c.mu.Lock()
	c.records[key] = rec
	c.mu.Unlock()
}

func (c *Cache) fail(err error) {
	c.logger.Error("summarization pass failed", "error", err)
	c.mu.Lock()
	c.status = docmodel.StatusFailed
	c.lastErr = err.Error()
	c.mu.Unlock()
}
