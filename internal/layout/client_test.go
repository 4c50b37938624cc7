package layout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
)

func TestClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("filename got %q", header.Filename)
		}

		json.NewEncoder(w).Encode([]docmodel.Segment{
			{PageNumber: 1, Left: 10, Top: 20, Width: 100, Height: 30, Text: "heading", Type: docmodel.Title},
			{PageNumber: 1, Left: 10, Top: 60, Width: 100, Height: 200, Text: "body", Type: docmodel.Text},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	segs, err := c.Analyze(context.Background(), "report.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[0].Text != "heading" || segs[0].Type != docmodel.Title {
		t.Errorf("first segment mismatch: %+v", segs[0])
	}
}

func TestClient_Analyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Internal_Error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model crashed", http.StatusInternalServerError)
			},
		},
		{
			name: "Malformed_Body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{not a segment list"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL)
			_, err := c.Analyze(context.Background(), "report.pdf", []byte("%PDF-"))
			if !faults.IsUnavailable(err) {
				t.Fatalf("expected unavailable error, got %v", err)
			}
		})
	}
}

func TestClient_Analyze_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down immediately, keeping the reserved address

	c := NewClient(srv.URL)
	_, err := c.Analyze(context.Background(), "report.pdf", []byte("%PDF-"))
	if !faults.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}
