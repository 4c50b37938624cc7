// @title           PDF Chat API
// @version         1.0
// @description     Analyze PDFs into positioned segments, then ask grounded questions and fetch per-segment summaries.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:5001
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/data/store"
	"github.com/arvika/pdfchat/internal/domain/docmodel"
	"github.com/arvika/pdfchat/internal/handlers"
	"github.com/arvika/pdfchat/internal/layout"
	"github.com/arvika/pdfchat/internal/rag"
	"github.com/arvika/pdfchat/internal/rag/embedding"
	"github.com/arvika/pdfchat/internal/rag/embedding/googleEmbedding"
	"github.com/arvika/pdfchat/internal/rag/embedding/openaiEmbedding"
	"github.com/arvika/pdfchat/internal/rag/llm"
	"github.com/arvika/pdfchat/internal/rag/llm/gemini"
	"github.com/arvika/pdfchat/internal/rag/llm/openaillm"
	"github.com/arvika/pdfchat/internal/registry"
	"github.com/arvika/pdfchat/internal/segments"
	"github.com/arvika/pdfchat/internal/server"
	"github.com/arvika/pdfchat/internal/worker"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	llmProvider, embeddingService, err := buildProvider(serviceContext)
	if err != nil {
		logger.Error("Failed to initialize model provider. Shutting down.", "provider", config.Provider(), "error", err)
		return
	}

	//summaries live in redis when it's up, on disk otherwise
	var summaryStore docmodel.SummaryStore
	if redisSummaries := store.GetRedisSummaryStore(serviceContext); redisSummaries != nil {
		summaryStore = redisSummaries
	} else {
		logger.Info("Redis offline, using file-backed summary store")
		summaryStore = store.NewFileSummaryStore(config.StoragePath())
	}

	segmentStore := segments.NewStore(config.StoragePath())
	docRegistry := registry.New(segmentStore, summaryStore, embeddingService, llmProvider)

	var analyzer layout.Analyzer
	if url := config.LayoutServiceURL(); url != "" {
		analyzer = layout.NewClient(url)
	} else {
		logger.Info("LAYOUT_SERVICE_URL not set, using local extraction")
		analyzer = layout.NewFallbackExtractor()
	}

	ragService := rag.NewService(llmProvider, embeddingService)
	handlers.Init(docRegistry, ragService, analyzer)

	//init worker pool
	worker.InitServices(docRegistry)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildProvider(ctx context.Context) (llm.Provider, embedding.Embedder, error) {
	if config.Provider() == "openai" {
		provider, err := openaillm.NewClient(config.OpenAIAPIKey(), config.OpenAIModelName)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := openaiEmbedding.NewClient(config.OpenAIAPIKey(), config.OpenAIEmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return provider, embedder, nil
	}

	provider, err := gemini.NewClient(ctx, config.GoogleAPIKey(), config.GeminiModelName)
	if err != nil {
		return nil, nil, err
	}
	embedder, err := googleEmbedding.NewClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	if err != nil {
		return nil, nil, err
	}
	return provider, embedder, nil
}
