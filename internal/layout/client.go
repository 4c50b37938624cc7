// Package layout turns PDF bytes into positioned text segments. The primary
// implementation calls an external layout-analysis service; a local extractor
// covers deployments without one.
package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/customHttpClient"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

type Analyzer interface {
	Analyze(ctx context.Context, filename string, data []byte) ([]docmodel.Segment, error)
}

// Client posts the document to a layout-analysis service and decodes the
// segment list it returns.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger_i.Logger
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: customHttpClient.Pooled(config.LayoutCallTimeout),
		logger:     logger_i.NewLogger("LayoutClient"),
	}
}

func (c *Client) Analyze(ctx context.Context, filename string, data []byte) ([]docmodel.Segment, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, faults.Unavailable("layout service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, faults.Unavailable("layout service",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(detail)))
	}

	var segs []docmodel.Segment
	if err := json.NewDecoder(resp.Body).Decode(&segs); err != nil {
		return nil, faults.Unavailable("layout service", fmt.Errorf("malformed response: %w", err))
	}
	c.logger.Info("layout analysis complete", "filename", filename, "segments", len(segs))
	return segs, nil
}
