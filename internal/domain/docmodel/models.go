package docmodel

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
)

type SegmentType string

// Region types the layout service emits.
const (
	Title         SegmentType = "Title"
	SectionHeader SegmentType = "Section header"
	Text          SegmentType = "Text"
	Table         SegmentType = "Table"
	Picture       SegmentType = "Picture"
	ListItem      SegmentType = "List item"
	PageHeader    SegmentType = "Page header"
	PageFooter    SegmentType = "Page footer"
	Footnote      SegmentType = "Footnote"
	Formula       SegmentType = "Formula"
	Caption       SegmentType = "Caption"
)

// Segment is one layout-detected region of a page. Immutable after ingest;
// Key is its ordinal within the document and is the join key for summaries
// and retrieval hits.
type Segment struct {
	Key        int         `json:"segment_key"`
	Left       float64     `json:"left"`
	Top        float64     `json:"top"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	PageNumber int         `json:"page_number"`
	PageWidth  int         `json:"page_width"`
	PageHeight int         `json:"page_height"`
	Text       string      `json:"text"`
	Type       SegmentType `json:"type"`
}

// Bbox returns the box as [left, top, width, height].
func (s Segment) Bbox() [4]float64 {
	return [4]float64{s.Left, s.Top, s.Width, s.Height}
}

// KeyString is the map key summaries and index metadata are stored under.
func (s Segment) KeyString() string {
	return strconv.Itoa(s.Key)
}

// SummaryRecord is one persisted per-segment summary.
type SummaryRecord struct {
	Summary    string     `json:"summary"`
	SourceText string     `json:"source_text"`
	Page       int        `json:"page"`
	Bbox       [4]float64 `json:"bbox"`
}

type SummaryStatus string

const (
	StatusNotStarted SummaryStatus = "NOT_STARTED"
	StatusInProgress SummaryStatus = "IN_PROGRESS"
	StatusComplete   SummaryStatus = "COMPLETE"
	StatusFailed     SummaryStatus = "FAILED"
)

var hashPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// ContentHash is the document identity: lowercase sha256 hex of the raw bytes.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func ValidContentHash(hash string) bool {
	return hashPattern.MatchString(hash)
}
