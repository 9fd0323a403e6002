package worker

import (
	"sync/atomic"
	"time"

	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/domain/task"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"github.com/google/uuid"
)

// Queue implements the deferred-task boundary: Schedule enqueues and
// returns immediately, the pool executes at least once. The buffered
// channel caps intake; a full buffer makes Schedule's push block, which
// is the backpressure we want instead of unbounded memory.
type Queue struct {
	tasks             chan task.Task
	dispatcherChannel chan bool
	requestCount      int64
	logger            *logging.Logger
}

func NewQueue(buffer int) *Queue {
	return &Queue{
		tasks:             make(chan task.Task, buffer),
		dispatcherChannel: make(chan bool, 1),
		logger:            logging.NewLogger("TaskQueue"),
	}
}

func (q *Queue) Schedule(t task.Task, delay time.Duration) {
	if t.Id == "" {
		t.Id = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	metrics.IncrementTasksInQueue()

	if delay <= 0 {
		q.push(t)
		return
	}
	time.AfterFunc(delay, func() { q.push(t) })
}

func (q *Queue) push(t task.Task) {
	q.tasks <- t
	q.logger.Debug("Queued task", "taskId", t.Id, "kind", t.Kind, "attempt", t.Attempts)

	// every N-th task nudges the dispatcher to consider another worker
	count := atomic.AddInt64(&q.requestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 {
		metrics.IncrementDispatcherSignal()
		select {
		case q.dispatcherChannel <- true:
		default:
		}
	}
}
