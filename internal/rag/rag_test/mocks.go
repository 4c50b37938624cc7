package rag_test

import (
	"context"
	"strings"
)

// MockEmbedder implements embedding.Embedder. Defaults map recognizable
// keywords onto orthogonal unit vectors so similarity ranking is
// deterministic.
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return KeywordVector(query), nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vectors[i] = KeywordVector(c)
	}
	return vectors, nil
}

// KeywordVector buckets text into one of three orthogonal directions.
func KeywordVector(text string) []float32 {
	switch {
	case strings.Contains(text, "cat"):
		return []float32{1, 0, 0}
	case strings.Contains(text, "revenue"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

type MockLLM struct {
	OnGenerate  func(ctx context.Context, query string, matches []string) (string, error)
	OnSummarize func(ctx context.Context, text string) (string, error)
	OnComplete  func(ctx context.Context, instruction string, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, query string, matches []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, query, matches)
	}
	return "default answer", nil
}

func (m *MockLLM) Summarize(ctx context.Context, text string) (string, error) {
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, text)
	}
	return "default summary", nil
}

func (m *MockLLM) Complete(ctx context.Context, instruction string, prompt string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, instruction, prompt)
	}
	return "default overview", nil
}
