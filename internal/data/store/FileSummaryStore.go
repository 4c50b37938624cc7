package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// FileSummaryStore is the durable default: one JSON file per content hash,
// rewritten atomically after every record.
type FileSummaryStore struct {
	dir    string
	mu     sync.Mutex
	logger *logger_i.Logger
}

func NewFileSummaryStore(dir string) *FileSummaryStore {
	return &FileSummaryStore{
		dir:    dir,
		logger: logger_i.NewLogger("FileSummaryStore"),
	}
}

func (s *FileSummaryStore) path(hash string) string {
	return filepath.Join(s.dir, hash, config.SummariesFile)
}

func (s *FileSummaryStore) SaveRecord(ctx context.Context, hash string, key string, rec docmodel.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(hash)
	if err != nil {
		return err
	}
	records[key] = rec
	return s.write(hash, records)
}

func (s *FileSummaryStore) LoadRecords(ctx context.Context, hash string) (map[string]docmodel.SummaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(hash)
}

func (s *FileSummaryStore) load(hash string) (map[string]docmodel.SummaryRecord, error) {
	data, err := os.ReadFile(s.path(hash))
	if os.IsNotExist(err) {
		return make(map[string]docmodel.SummaryRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary store: %w", err)
	}
	var records map[string]docmodel.SummaryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("summary store: %w", err)
	}
	return records, nil
}

func (s *FileSummaryStore) write(hash string, records map[string]docmodel.SummaryRecord) error {
	path := s.path(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("summary store: %w", err)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("summary store: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("summary store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("summary store: %w", err)
	}
	return nil
}
