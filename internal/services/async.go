package services

import (
	"context"
	"sync"
	"time"

	"jobmarket_backend/internal/logger"
)

const defaultAsyncTimeout = 30 * time.Second

// Dispatcher runs fire-and-forget jobs, such as emails sent after a commit.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	wg      sync.WaitGroup
	timeout time.Duration
}

func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultAsyncTimeout
	}
	return &Dispatcher{timeout: timeout}
}

func (d *Dispatcher) Go(worker, operation string, fn func(ctx context.Context) error, args ...any) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		logger.WorkerLog(worker, operation, fn(ctx), args...)
	}()
}

// Wait blocks until every job started so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
