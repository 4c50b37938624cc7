package layout

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	pdflib "github.com/dslipak/pdf"

	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

const pageExtractTimeout = 20 * time.Second

// FallbackExtractor reads PDF text locally when no layout service is
// configured. It produces one full-page Text segment per page; geometry is
// coarse but the content still indexes and summarizes.
type FallbackExtractor struct {
	logger *logger_i.Logger
}

func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{logger: logger_i.NewLogger("FallbackExtractor")}
}

func (f *FallbackExtractor) Analyze(ctx context.Context, filename string, data []byte) ([]docmodel.Segment, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, faults.Validation("unreadable PDF %q: %v", filename, err)
	}

	var segs []docmodel.Segment
	for i := 1; i <= reader.NumPage(); i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		text, err := protectExtract(reader, i)
		if err != nil {
			// malformed pages are skipped, the rest of the document survives
			f.logger.Warn("page extraction failed", "filename", filename, "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		segs = append(segs, docmodel.Segment{
			PageNumber: i,
			Text:       text,
			Type:       docmodel.Text,
		})
	}
	f.logger.Info("fallback extraction complete", "filename", filename, "segments", len(segs))
	return segs, nil
}

// protectExtract isolates the parser: some PDFs make it panic or spin, so the
// call runs in its own goroutine under a recover and a deadline.
func protectExtract(reader *pdflib.Reader, pageNum int) (text string, err error) {
	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("parser panic on page %d: %v", pageNum, r)
			}
			close(done)
		}()
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			err = fmt.Errorf("page %d is null", pageNum)
			return
		}
		text, err = page.GetPlainText(nil)
	}()

	select {
	case <-done:
		return text, err
	case <-time.After(pageExtractTimeout):
		return "", fmt.Errorf("page %d extraction timed out", pageNum)
	}
}
