package usecase

import (
	"context"
	"errors"
	"sync"

	applogger "trade_analytics/internal/infra/logger"
)

var (
	ErrRecomputeQueueFull = errors.New("recompute queue full")
	ErrPoolClosed         = errors.New("worker pool closed")
)

type task func(ctx context.Context)

// WorkerPool runs submitted tasks on a fixed number of goroutines fed by a bounded queue.
type WorkerPool struct {
	queue  chan task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		queue:  make(chan task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work(i)
	}
	return p
}

// Submit enqueues fn without blocking.
func (p *WorkerPool) Submit(fn func(ctx context.Context)) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.queue <- fn:
		return nil
	default:
		return ErrRecomputeQueueFull
	}
}

// Close stops accepting tasks, lets queued tasks finish and waits for the workers.
// Tasks still running when ctx expires see their context cancelled.
func (p *WorkerPool) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

func (p *WorkerPool) work(id int) {
	defer p.wg.Done()
	for fn := range p.queue {
		p.run(id, fn)
	}
}

func (p *WorkerPool) run(id int, fn task) {
	defer func() {
		if r := recover(); r != nil {
			applogger.Logger.Error().Int("worker", id).Interface("panic", r).Msg("worker task panicked")
		}
	}()
	fn(p.ctx)
}
