package offload

import "context"

// Executor runs blocking work (model inference, slow outbound calls) on a
// bounded set of workers so the HTTP serving goroutines stay responsive.
type Executor struct {
	slots chan struct{}
}

func NewExecutor(workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		slots: make(chan struct{}, workers),
	}
}

// Run executes task on a worker and waits for it to finish. Waiting for a free
// slot is the backpressure point: when all workers are busy, callers queue here.
//
// If ctx is done while the task is still running, Run returns ctx.Err() and the
// task keeps running to completion on its goroutine; its result is discarded.
// Tasks are not interrupted.
func (e *Executor) Run(ctx context.Context, task func()) error {
	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		defer func() {
			<-e.slots
			close(done)
		}()
		task()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
