// Package adapter converts domain results into the wire shapes the API
// publishes.
package adapter

import (
	"github.com/arvika/pdfchat/internal/api"
	"github.com/arvika/pdfchat/internal/rag"
	"github.com/arvika/pdfchat/internal/summary"
)

func ToChatResponse(answer rag.Answer) api.ChatResponse {
	sources := make([]api.Source, 0, len(answer.Sources))
	for _, s := range answer.Sources {
		sources = append(sources, api.Source{
			ContentPreview: s.ContentPreview,
			Metadata: api.SourceMetadata{
				SegmentKey: s.SegmentKey,
				PageNumber: s.PageNumber,
				Bbox:       s.Bbox,
				Type:       s.Type,
				Score:      s.Score,
			},
		})
	}
	return api.ChatResponse{Response: answer.Response, Sources: sources}
}

func ToSummariesResponse(snap summary.Snapshot) api.SummariesResponse {
	return api.SummariesResponse{
		Summaries: snap.Summaries,
		IsPartial: snap.IsPartial,
		Count:     snap.Count,
		Status:    string(snap.Status),
		Error:     snap.Err,
	}
}
