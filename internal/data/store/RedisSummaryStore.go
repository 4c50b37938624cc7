package store

import (
	"context"
	"encoding/json"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/data/redisStore"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// RedisSummaryStore keeps one redis hash per content hash, one field per
// segment key. Optional backend; main falls back to the file store when redis
// is offline.
type RedisSummaryStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisSummaryStore(ctx context.Context) *RedisSummaryStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisSummaryDB)
	if inner == nil {
		return nil
	}
	return &RedisSummaryStore{
		store:  inner,
		logger: logger_i.NewLogger("RedisSummaryStore"),
	}
}

func (s *RedisSummaryStore) SaveRecord(ctx context.Context, hash string, key string, rec docmodel.SummaryRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.store.HSet(ctx, summaryKey(hash), key, data)
}

func (s *RedisSummaryStore) LoadRecords(ctx context.Context, hash string) (map[string]docmodel.SummaryRecord, error) {
	fields, err := s.store.HGetAll(ctx, summaryKey(hash))
	if err != nil {
		return nil, err
	}

	records := make(map[string]docmodel.SummaryRecord, len(fields))
	for key, raw := range fields {
		var rec docmodel.SummaryRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			s.logger.Error("dropping unreadable summary record", "hash", hash, "key", key, "error", err)
			continue
		}
		records[key] = rec
	}
	return records, nil
}

func summaryKey(hash string) string {
	return "summaries:" + hash
}

// TestSummaryStore wires a test redis store; for _test.go files only.
func TestSummaryStore(inner *redisStore.Store) *RedisSummaryStore {
	return &RedisSummaryStore{
		store:  inner,
		logger: logger_i.NewLogger("test redis"),
	}
}
