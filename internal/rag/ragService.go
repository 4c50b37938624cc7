// Package rag answers questions grounded in one document: retrieve the
// nearest indexed chunks, hand them to the model, and report which segments
// the answer came from. Queries asking what the document is get an overview
// built from a sample of its segments instead of a retrieval pass.
package rag

import (
	"context"
	"strings"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/index"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// Document is everything Ask needs from one analyzed document: the vector
// index for retrieval and the raw segments for overview sampling.
type Document struct {
	Index    *index.Index
	Segments []docmodel.Segment
}

// Answer carries the generated response plus the provenance of every chunk
// that fed it, already truncated for display. Overview answers carry no
// sources.
type Answer struct {
	Response string
	Sources  []Source
}

type Source struct {
	ContentPreview string
	SegmentKey     int
	PageNumber     int
	Bbox           [4]float64
	Type           string
	Score          float32
}

type Service interface {
	Ask(ctx context.Context, doc Document, query string) (Answer, error)
}

type service struct {
	provider llm.Provider
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func NewService(provider llm.Provider, em embedding.Embedder) Service {
	return &service{
		provider: provider,
		embedder: em,
		logger:   logger_i.NewLogger("RagService"),
	}
}

func (s *service) Ask(ctx context.Context, doc Document, query string) (Answer, error) {
	if strings.TrimSpace(query) == "" {
		return Answer{}, faults.Validation("query must not be empty")
	}

	if isDescriptive(query) {
		s.logger.Debug("descriptive query, answering from document sample")
		return s.describeDocument(ctx, doc, query, config.OverviewPrompt)
	}

	hits, err := s.executeRetrievalStep(ctx, doc.Index, query)
	if err != nil {
		return Answer{}, err
	}
	if len(hits) == 0 {
		s.logger.Debug("no matches, answering from document sample")
		return s.describeDocument(ctx, doc, query, config.NoMatchPrompt)
	}

	response, err := s.executeGenerationStep(ctx, query, hits)
	if err != nil {
		return Answer{}, err
	}

	return Answer{Response: response, Sources: buildSources(hits)}, nil
}

// descriptivePhrases are questions about the document itself rather than its
// contents; matching is by substring over the normalized query.
var descriptivePhrases = []string{
	"what am i looking at",
	"what is this document",
	"what does this document contain",
	"describe this document",
	"summarize this document",
	"what is in this document",
	"what can you tell me about this document",
}

func isDescriptive(query string) bool {
	normalized := strings.TrimRight(strings.ToLower(strings.TrimSpace(query)), "?")
	for _, phrase := range descriptivePhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

// describeDocument answers from a sample of the document's segments. With
// nothing to sample it returns the canned no-match response rather than
// calling the model.
func (s *service) describeDocument(ctx context.Context, doc Document, query string, promptFormat string) (Answer, error) {
	samples := sampleSegments(doc.Segments)
	if len(samples) == 0 {
		return Answer{Response: config.NoMatchResponse, Sources: []Source{}}, nil
	}

	response, err := s.executeOverviewStep(ctx, query, samples, promptFormat)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Response: response, Sources: []Source{}}, nil
}

func sampleSegments(segments []docmodel.Segment) []string {
	samples := make([]string, 0, config.OverviewSampleCount)
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if len(text) > config.OverviewSampleChars {
			text = text[:config.OverviewSampleChars] + "..."
		}
		samples = append(samples, text)
		if len(samples) == config.OverviewSampleCount {
			break
		}
	}
	return samples
}

func buildSources(hits []index.Hit) []Source {
	sources := make([]Source, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, Source{
			ContentPreview: preview(h.Content),
			SegmentKey:     h.SegmentKey,
			PageNumber:     h.PageNumber,
			Bbox:           h.Bbox,
			Type:           h.Type,
			Score:          h.Score,
		})
	}
	return sources
}

// preview truncates chunk text for the sources list; the full text stays in
// the index.
func preview(content string) string {
	if len(content) <= config.SourcePreviewLength {
		return content
	}
	return content[:config.SourcePreviewLength] + "..."
}
