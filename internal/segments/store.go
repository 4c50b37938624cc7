// Package segments retains the normalized layout regions for each analyzed
// document. The ordinal key assigned here is the join key used by the index
// metadata and the summary records.
package segments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

type Store struct {
	dir    string
	logger *logger_i.Logger
}

func NewStore(dir string) *Store {
	return &Store{
		dir:    dir,
		logger: logger_i.NewLogger("SegmentStore"),
	}
}

// Normalize assigns ordinal keys, trims text, and clamps geometry to the page
// box. The layout service occasionally reports boxes a hair outside the page;
// overlay math needs them inside it.
func Normalize(raw []docmodel.Segment) []docmodel.Segment {
	out := make([]docmodel.Segment, len(raw))
	for i, seg := range raw {
		seg.Key = i
		seg.Text = strings.TrimSpace(seg.Text)
		seg = clamp(seg)
		out[i] = seg
	}
	return out
}

func clamp(seg docmodel.Segment) docmodel.Segment {
	if seg.Left < 0 {
		seg.Left = 0
	}
	if seg.Top < 0 {
		seg.Top = 0
	}
	if pw := float64(seg.PageWidth); pw > 0 && seg.Left+seg.Width > pw {
		seg.Width = pw - seg.Left
	}
	if ph := float64(seg.PageHeight); ph > 0 && seg.Top+seg.Height > ph {
		seg.Height = ph - seg.Top
	}
	if seg.Width < 0 {
		seg.Width = 0
	}
	if seg.Height < 0 {
		seg.Height = 0
	}
	return seg
}

func (s *Store) path(hash string) string {
	return filepath.Join(s.dir, hash, config.SegmentsFileName)
}

func (s *Store) Save(hash string, segs []docmodel.Segment) error {
	path := s.path(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("segment store: %w", err)
	}

	data, err := json.Marshal(segs)
	if err != nil {
		return fmt.Errorf("segment store: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("segment store: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("segment store: %w", err)
	}
	s.logger.Debug("saved segments", "hash", hash, "count", len(segs))
	return nil
}

func (s *Store) Load(hash string) ([]docmodel.Segment, error) {
	data, err := os.ReadFile(s.path(hash))
	if err != nil {
		return nil, fmt.Errorf("segment store: %w", err)
	}
	var segs []docmodel.Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, fmt.Errorf("segment store: %w", err)
	}
	return segs, nil
}

func (s *Store) Exists(hash string) bool {
	info, err := os.Stat(s.path(hash))
	return err == nil && !info.IsDir()
}

// TypeCounts tallies segments per region type, used for analyze logging.
func TypeCounts(segs []docmodel.Segment) map[docmodel.SegmentType]int {
	counts := make(map[docmodel.SegmentType]int)
	for _, seg := range segs {
		counts[seg.Type]++
	}
	return counts
}
