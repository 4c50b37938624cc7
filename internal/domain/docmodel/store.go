package docmodel

import "context"

// SummaryStore persists summary records incrementally, one write per segment,
// so one segment's durability never depends on the batch completing.
type SummaryStore interface {
	SaveRecord(ctx context.Context, hash string, key string, rec SummaryRecord) error
	LoadRecords(ctx context.Context, hash string) (map[string]SummaryRecord, error)
}
