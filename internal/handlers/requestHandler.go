package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/arvika/pdfchat/internal/adapter"
	"github.com/arvika/pdfchat/internal/adapter/utils"
	"github.com/arvika/pdfchat/internal/api"
	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/faults"
	"github.com/arvika/pdfchat/internal/layout"
	"github.com/arvika/pdfchat/internal/rag"
	"github.com/arvika/pdfchat/internal/registry"
	"github.com/arvika/pdfchat/internal/worker"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

var (
	logRH       *logger_i.Logger
	_registry   *registry.Registry
	_ragService rag.Service
	_analyzer   layout.Analyzer
)

var pdfMagic = []byte("%PDF-")

func Init(reg *registry.Registry, ragService rag.Service, analyzer layout.Analyzer) {
	logRH = logger_i.NewLogger("RequestHandler")
	_registry = reg
	_ragService = ragService
	_analyzer = analyzer
}

// HealthHandler godoc
// @Summary      Liveness check
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// AnalyzeHandler godoc
// @Summary      Upload a PDF for analysis
// @Description  Segments the document, builds its vector index, and returns the positioned segments. Re-uploading identical bytes resolves to the stored artifacts without re-embedding.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF document"
// @Success      200   {array}   docmodel.Segment
// @Header       200   {string}  X-Content-Hash  "sha256 of the uploaded bytes"
// @Failure      400   {object}  api.ErrorResponse  "Not a PDF or unreadable upload"
// @Failure      503   {object}  api.ErrorResponse  "Layout service unavailable"
// @Router       /analyze [post]
func AnalyzeHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid context by request", "remote", request.RemoteAddr)
		return
	}
	ctx := request.Context()

	if err := request.ParseMultipartForm(config.MaxUploadSize); err != nil {
		logRH.Warn("Bad multipart upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}
	file, header, err := request.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logRH.Error("Failed to read upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "unreadable upload")
		return
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		logRH.Warn("Rejected non-PDF upload", "filename", header.Filename)
		WriteErrorResponse(w, http.StatusBadRequest, "only PDF documents are supported")
		return
	}

	hash := docmodel.ContentHash(data)
	logRH.Info("Analyze request", "filename", header.Filename, "hash", hash)

	handle, err := _registry.Lookup(ctx, hash)
	switch {
	case err == nil:
		// known content: segments and vectors already on disk
		handle, err = _registry.ResolveOrCreate(ctx, hash, handle.Segments)
	case faults.IsNotFound(err):
		var raw []docmodel.Segment
		raw, err = _analyzer.Analyze(ctx, header.Filename, data)
		if err != nil {
			writeFault(w, err)
			return
		}
		handle, err = _registry.ResolveOrCreate(ctx, hash, raw)
	}
	if err != nil {
		logRH.Error("Analysis failed", "hash", hash, "error", err)
		writeFault(w, err)
		return
	}

	w.Header().Set("X-Content-Hash", handle.Hash)
	writeJsonResponse(w, http.StatusOK, api.AnalyzeResponse(handle.Segments))
}

// SummarizeHandler godoc
// @Summary      Get per-segment summaries
// @Description  Without flags this blocks until the generation pass finishes. partial=true snapshots whatever exists right now; resume=true queues a background pass and snapshots.
// @Tags         Documents
// @Produce      json
// @Param        hash     path   string  true   "sha256 content hash"
// @Param        partial  query  bool    false  "return current records without waiting"
// @Param        resume   query  bool    false  "continue generation in the background"
// @Success      200  {object}  api.SummariesResponse
// @Failure      400  {object}  api.ErrorResponse  "Malformed hash"
// @Failure      404  {object}  api.ErrorResponse  "Unknown document"
// @Router       /summarize/{hash} [get]
func SummarizeHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		return
	}
	ctx := request.Context()

	hash := utils.GetChiURLParam(request, "hash")
	if !docmodel.ValidContentHash(hash) {
		WriteErrorResponse(w, http.StatusBadRequest, "invalid content hash")
		return
	}

	handle, err := _registry.Lookup(ctx, hash)
	if err != nil {
		writeFault(w, err)
		return
	}

	query := request.URL.Query()
	partial := query.Get("partial") == "true"
	resume := query.Get("resume") == "true"

	if resume {
		worker.Enqueue(worker.SummaryJob{Hash: hash, TraceId: traceFrom(ctx)})
		// the snapshot reflects progress so far; the pass continues behind us
		partial = true
	}

	snap := handle.Summaries.Get(ctx, partial)
	writeJsonResponse(w, http.StatusOK, adapter.ToSummariesResponse(snap))
}

// ChatHandler godoc
// @Summary      Ask a question about a document
// @Description  Retrieves the most relevant indexed chunks and generates a grounded answer with source positions.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        hash     path  string           true  "sha256 content hash"
// @Param        request  body  api.ChatRequest  true  "Question"
// @Success      200  {object}  api.ChatResponse
// @Failure      400  {object}  api.ErrorResponse  "Malformed hash or empty query"
// @Failure      404  {object}  api.ErrorResponse  "Unknown document"
// @Router       /chat/{hash} [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		return
	}
	ctx := request.Context()

	hash := utils.GetChiURLParam(request, "hash")
	if !docmodel.ValidContentHash(hash) {
		WriteErrorResponse(w, http.StatusBadRequest, "invalid content hash")
		return
	}

	var requestData api.ChatRequest
	defer request.Body.Close()
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad chat request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "malformed request body")
		return
	}

	handle, err := _registry.Lookup(ctx, hash)
	if err != nil {
		writeFault(w, err)
		return
	}

	answer, err := _ragService.Ask(ctx, rag.Document{Index: handle.Index, Segments: handle.Segments}, requestData.Query)
	if err != nil {
		logRH.Error("Chat failed", "hash", hash, "error", err)
		writeFault(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
}

// QueryHandler godoc
// @Summary      Ask about the most recently analyzed document
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body  api.QueryRequest  true  "Question (text or query field)"
// @Success      200  {object}  api.ChatResponse
// @Failure      400  {object}  api.ErrorResponse  "Empty query"
// @Failure      404  {object}  api.ErrorResponse  "No document analyzed yet"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		return
	}
	ctx := request.Context()

	var requestData api.QueryRequest
	defer request.Body.Close()
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "malformed request body")
		return
	}

	handle, err := _registry.Last(ctx)
	if err != nil {
		if faults.IsNotFound(err) {
			WriteErrorResponse(w, http.StatusNotFound, "no document analyzed yet")
			return
		}
		writeFault(w, err)
		return
	}

	answer, err := _ragService.Ask(ctx, rag.Document{Index: handle.Index, Segments: handle.Segments}, requestData.Question())
	if err != nil {
		writeFault(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
}
