package api

import "github.com/arvika/pdfchat/internal/domain/docmodel"

// requests---------------------

type ChatRequest struct {
	Query string `json:"query" validate:"required" example:"What happened to revenue?"`
}

// QueryRequest is the single-document variant; Query is accepted as an alias
// for Text.
type QueryRequest struct {
	Text  string `json:"text,omitempty"`
	Query string `json:"query,omitempty"`
}

func (q QueryRequest) Question() string {
	if q.Text != "" {
		return q.Text
	}
	return q.Query
}

// responses--------------------

type SourceMetadata struct {
	SegmentKey int        `json:"segment_key"`
	PageNumber int        `json:"page_number"`
	Bbox       [4]float64 `json:"bbox"`
	Type       string     `json:"type"`
	Score      float32    `json:"score"`
}

type Source struct {
	ContentPreview string         `json:"content_preview"`
	Metadata       SourceMetadata `json:"metadata"`
}

type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
}

type SummariesResponse struct {
	Summaries map[string]docmodel.SummaryRecord `json:"summaries"`
	IsPartial bool                              `json:"is_partial"`
	Count     int                               `json:"count"`
	Status    string                            `json:"status"`
	Error     string                            `json:"error,omitempty"`
}

type AnalyzeResponse = []docmodel.Segment

type ErrorResponse struct {
	Error string `json:"error" example:"invalid content hash"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
