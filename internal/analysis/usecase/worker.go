package usecase

import (
	"context"
	"log"
	"sync"
)

// AnalysisJob is one queued analysis run
type AnalysisJob struct {
	MessageID    string
	AnalysisID   string
	Instructions string
}

// AnalysisWorkerPool runs analyses off the request thread on a bounded
// queue, so backpressure and shutdown draining are controllable instead of
// detaching unobserved goroutines
type AnalysisWorkerPool struct {
	usecase     *AnalysisUsecase
	jobQueue    chan AnalysisJob
	workerWg    sync.WaitGroup
	workerCount int
	started     bool
	mu          sync.Mutex
}

// NewAnalysisWorkerPool creates a new worker pool
func NewAnalysisWorkerPool(usecase *AnalysisUsecase, workerCount int) *AnalysisWorkerPool {
	if workerCount <= 0 {
		workerCount = 3
	}
	return &AnalysisWorkerPool{
		usecase:     usecase,
		jobQueue:    make(chan AnalysisJob, 100),
		workerCount: workerCount,
	}
}

// Start starts the workers
func (p *AnalysisWorkerPool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}

	for i := 0; i < p.workerCount; i++ {
		p.workerWg.Add(1)
		go p.worker(i)
	}
	p.started = true
	log.Printf("[AnalysisWorker] Started %d workers", p.workerCount)
}

// Stop drains the queue and stops all workers
func (p *AnalysisWorkerPool) Stop() {
	close(p.jobQueue)
	p.workerWg.Wait()
	log.Println("[AnalysisWorker] All workers stopped")
}

// QueueJob adds a job to the queue without blocking. Returns false when
// the queue is full.
func (p *AnalysisWorkerPool) QueueJob(job AnalysisJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

func (p *AnalysisWorkerPool) worker(id int) {
	defer p.workerWg.Done()

	for job := range p.jobQueue {
		if _, err := p.usecase.RunAnalysis(context.Background(), job.MessageID, job.AnalysisID, job.Instructions); err != nil {
			log.Printf("[AnalysisWorker] Worker %d: analysis for message %s failed: %v", id, job.MessageID, err)
		}
	}

	log.Printf("[AnalysisWorker] Worker %d stopped", id)
}
