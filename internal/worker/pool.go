package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/domain/task"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

// EmbeddingRunner and DescriptionRunner are the two task handlers the
// pool routes to; the pipeline package satisfies both.
type EmbeddingRunner interface {
	EmbedNote(ctx context.Context, noteId string, text string) error
	EmbedDocument(ctx context.Context, documentId string, text string) error
}

type DescriptionRunner interface {
	Generate(ctx context.Context, documentId string) error
}

// Pool runs queued tasks on a dynamically sized set of workers: it
// grows on dispatcher signals up to MaxWorkerCount and retires idle
// workers back down to the minimum.
type Pool struct {
	queue        *Queue
	embeddings   EmbeddingRunner
	descriptions DescriptionRunner
	stopChannel  chan bool
	waitGroup    *sync.WaitGroup
	workerCount  int64
	logger       *logging.Logger
}

func NewPool(queue *Queue, embeddings EmbeddingRunner, descriptions DescriptionRunner, stopChannel chan bool, waitGroup *sync.WaitGroup) *Pool {
	return &Pool{
		queue:        queue,
		embeddings:   embeddings,
		descriptions: descriptions,
		stopChannel:  stopChannel,
		waitGroup:    waitGroup,
		logger:       logging.NewLogger("WorkerPool"),
	}
}

func (p *Pool) Start() {
	p.logger.Info("Initializing worker pool")
	go p.dispatcher()
}

func (p *Pool) dispatcher() {
	p.createWorker()
	for range p.queue.dispatcherChannel {
		if atomic.LoadInt64(&p.workerCount) < config.MaxWorkerCount {
			p.createWorker()
		}
	}
}

func (p *Pool) createWorker() {
	p.waitGroup.Add(1)
	atomic.AddInt64(&p.workerCount, 1)
	metrics.IncrementActiveWorkerCount()
	go p.worker()
	p.logger.Info("Created new worker", "workerCount", atomic.LoadInt64(&p.workerCount))
}

func (p *Pool) worker() {
	for {
		select {
		case currentTask := <-p.queue.tasks:
			p.execute(currentTask)
			metrics.DecrementTasksInQueue()

		case <-p.stopChannel:
			p.removeWorker("stop signal received")
			return

		case <-time.After(config.IdleWorkerTimeout):
			if atomic.LoadInt64(&p.workerCount) > config.MinWorkerCount {
				p.removeWorker("idle timeout")
				return
			}
		}
	}
}

func (p *Pool) removeWorker(reason string) {
	p.waitGroup.Done()
	atomic.AddInt64(&p.workerCount, -1)
	metrics.DecrementActiveWorkerCount()
	p.logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&p.workerCount))
}

func (p *Pool) execute(t task.Task) {
	start := time.Now()
	outcome := "complete"
	defer func() { metrics.CaptureTaskMetrics(string(t.Kind), outcome, time.Since(start)) }()

	ctxTrace := context.WithValue(context.Background(), config.TraceIdKey, t.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.TaskTimeout)
	defer cancel()

	log := p.logger.With("taskId", t.Id, "kind", t.Kind, "traceId", t.TraceId)
	log.Debug("Processing task")

	var err error
	switch t.Kind {
	case task.KindEmbedNote:
		err = p.embeddings.EmbedNote(ctx, t.EntityId, t.Text)
	case task.KindEmbedDocument:
		err = p.embeddings.EmbedDocument(ctx, t.EntityId, t.Text)
	case task.KindGenerateDescription:
		err = p.descriptions.Generate(ctx, t.EntityId)
	default:
		log.Error("Unknown task kind")
		outcome = "dropped"
		return
	}

	if err == nil {
		return
	}
	outcome = "error"

	// at-least-once with a capped retry; a task that keeps failing is
	// dropped and the entity simply keeps its previous derived state
	t.Attempts++
	if t.Attempts < config.MaxTaskAttempts {
		log.Warn("Task failed, rescheduling", "attempt", t.Attempts, "error", err)
		p.queue.Schedule(t, config.TaskRetryDelay)
		return
	}
	log.Error("Task dropped after repeated failures", "attempts", t.Attempts, "error", err)
}
