package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/metrics"
)

func executeJob(job SummaryJob) {
	start := time.Now()
	defer func() {
		metrics.CaptureExecutionMetrics("summary_pass", time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.SummaryPassTimeout)
	defer cancel()

	jobLogger := logger.With("traceId", job.TraceId, "hash", job.Hash)
	jobLogger.Debug("Processing summarization job")

	handle, err := _registry.Lookup(ctx, job.Hash)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			jobLogger.Warn("document vanished before job ran")
			return
		}
		jobLogger.Error("failed to resolve document", "error", err)
		return
	}

	handle.Summaries.Resume(ctx)
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}
