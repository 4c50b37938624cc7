package config

import (
	"os"
	"time"
)

const (
	TRACE_ID_KEY = "traceId"

	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10

	//server
	ServerListenAddr       = ":5001"
	ReadTimeout            = 10 * time.Second
	WriteTimeout           = 5 * time.Minute //summarize with partial=false can run long
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//uploads
	MaxUploadSize = 32 << 20 //32mb

	//per-document storage
	StorageDir       = "pdfchat_storage"
	SegmentsFileName = "segments.json"
	IndexFileName    = "index.chromem"
	SummariesFile    = "summaries.json"

	//indexing
	ChunkSize            = 1000 //characters
	ChunkOverlap         = 150
	EmbeddingBatchSize   = 100
	DefaultTopK          = 4
	SourcePreviewLength  = 150
	EmbeddingDimensions  = 1536
	EmbeddingCallTimeout = 60 * time.Second

	//summarization
	MinSummaryChars    = 25 //shorter segments are indexed but not summarized
	SummaryCallTimeout = 90 * time.Second

	//answer generation
	GenerationCallTimeout = 90 * time.Second

	//layout service (the external PDF segmentation collaborator)
	LayoutCallTimeout = 4 * time.Minute

	//workers for background summarization passes
	MaxWorkerCount    int64 = 4
	MinWorkerCount    int64 = 1
	IdleWorkerTimeout       = 1 * time.Minute
	JobBufferLimit          = 32
	// a full background pass may summarize every segment of a large document
	SummaryPassTimeout = 30 * time.Minute

	//models
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	SummaryInstruction = "Summarize the following passage from a document in one or two sentences. Reply with the summary only."
	GroundingContext   = "You are a helpful assistant answering questions based ONLY on the provided context from a document. If the context does not contain the answer, state that clearly. Do not make up information."
	OverviewContext    = "You are a helpful assistant describing a document from short excerpts of it."

	//document overview (descriptive queries and the no-match fallback)
	OverviewSampleCount = 5
	OverviewSampleChars = 200
	OverviewPrompt      = "The user is asking '%s'.\nBased on the following samples from the document, please provide a brief description of what the document appears to contain or be about:\n\n%s\n\nDescribe what type of document this appears to be and what content it contains."
	NoMatchPrompt       = "The user asked '%s' about a document, but no specific information matching their query was found. Based on these samples from the document:\n\n%s\n\nPlease provide a helpful response that explains what information is available in the document and suggests how they might rephrase their query to get better results."
	NoMatchResponse     = "No relevant information was found in the indexed documents for your query. Please try a different query related to the content in the document."

	//http pooling
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	RedisAddr         = "127.0.0.1:6379"
	RedisSummaryDB    = 0
	RedisSummaryTTL   = 0 //summaries are content addressed, they do not expire
	RedisReadTimeout  = 30 * time.Second
	RedisWriteTimeout = 30 * time.Second
)

// env lookups with config fallback, adapters call these at construction

func GetenvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func StoragePath() string {
	return GetenvOr("PDFCHAT_STORAGE_DIR", StorageDir)
}

func LayoutServiceURL() string {
	return os.Getenv("LAYOUT_SERVICE_URL") //empty means local fallback extraction
}

func Provider() string {
	return GetenvOr("PDFCHAT_PROVIDER", "gemini")
}

func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
