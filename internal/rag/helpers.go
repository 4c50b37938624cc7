package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/index"
	"github.com/arvika/pdfchat/internal/metrics"
)

func (s *service) executeRetrievalStep(ctx context.Context, idx *index.Index, query string) ([]index.Hit, error) {
	start := time.Now()
	hits, err := idx.Query(ctx, query, config.DefaultTopK, s.embedder)
	metrics.CaptureExecutionMetrics("retrieval", time.Since(start))
	if err != nil {
		s.logger.Error("retrieval failed", "error", err)
		return nil, err
	}
	s.logger.Debug("retrieval complete", "hits", len(hits))
	return hits, nil
}

func (s *service) executeOverviewStep(ctx context.Context, query string, samples []string, promptFormat string) (string, error) {
	prompt := fmt.Sprintf(promptFormat, query, strings.Join(samples, "\n\n"))

	start := time.Now()
	response, err := s.provider.Complete(ctx, config.OverviewContext, prompt)
	metrics.CaptureExecutionMetrics("llm_overview", time.Since(start))
	if err != nil {
		s.logger.Error("overview generation failed", "error", err)
		if faults.IsUnavailable(err) {
			return "", err
		}
		return "", &faults.GenerationError{Cause: err}
	}
	return response, nil
}

func (s *service) executeGenerationStep(ctx context.Context, query string, hits []index.Hit) (string, error) {
	matches := make([]string, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, h.Content)
	}

	start := time.Now()
	response, err := s.provider.Generate(ctx, query, matches)
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
	if err != nil {
		s.logger.Error("generation failed", "error", err)
		if faults.IsUnavailable(err) {
			return "", err
		}
		return "", &faults.GenerationError{Cause: err}
	}
	return response, nil
}
