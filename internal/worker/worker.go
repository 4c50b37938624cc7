// Package worker runs background summarization passes so resume requests can
// return without waiting on the model.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/arvika/pdfchat/internal/config"
	"github.com/arvika/pdfchat/internal/metrics"
	"github.com/arvika/pdfchat/internal/registry"
	"github.com/arvika/pdfchat/pkg/logger_i"
)

// SummaryJob asks for one generation pass over a document. The pass itself is
// idempotent, so duplicate jobs for the same hash are harmless.
type SummaryJob struct {
	Hash    string
	TraceId string
}

var (
	_registry          *registry.Registry
	jobChannel         chan SummaryJob
	dispatcherChannel  chan bool
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	currentWorkerCount int64
	logger             *logger_i.Logger
)

func InitServices(reg *registry.Registry) {
	_registry = reg
	jobChannel = make(chan SummaryJob, config.JobBufferLimit)
	dispatcherChannel = make(chan bool, config.JobBufferLimit)
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing worker pool")
	go dispatcher()
}

// Enqueue hands a job to the pool without blocking; a full queue reports
// false and the caller's snapshot semantics still hold.
func Enqueue(job SummaryJob) bool {
	select {
	case jobChannel <- job:
		metrics.IncrementJobsInQueue()
		select {
		case dispatcherChannel <- true:
		default:
		}
		return true
	default:
		logger.Warn("job queue full, dropping resume request", "hash", job.Hash)
		return false
	}
}

func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "workerCount", currentWorkerCount)
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
}

func worker() {
	for {
		select {
		case job := <-jobChannel:
			executeJob(job)
			metrics.DecrementJobsInQueue()

		case <-stopWorkerChannel:
			removeWorker("stop signal received")
			return

		case <-time.After(config.IdleWorkerTimeout):
			if atomic.LoadInt64(&currentWorkerCount) > config.MinWorkerCount {
				removeWorker("idle timeout")
				return
			}
		}
	}
}
