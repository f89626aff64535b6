package syssched

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// AsyncTaskRunnerParams represents various options for AsyncTaskRunner.
type AsyncTaskRunnerParams struct {
	// UpdateInterval is how often to run the task.
	UpdateInterval time.Duration

	// ExitOnSuccess stops the runner once the task succeeds.
	ExitOnSuccess bool

	// Clock to schedule the runs, the wall clock is used if nil.
	Clock clock.Clock
}

// AsyncTaskRunner periodically runs task in the standalone goroutine.
type AsyncTaskRunner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	doneCh  chan struct{}
	task    Task
	handler ErrorHandler
	params  AsyncTaskRunnerParams

	mu      sync.Mutex
	started bool
}

// NewAsyncTaskRunner is an initialization of AsyncTaskRunner.
//
// Parameters:
//   - ctx - parent context, the runner stops when ctx is canceled.
//   - task to run periodically.
//   - handler to handle task errors, optional.
//   - params - various runner options.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler ErrorHandler,
	params AsyncTaskRunnerParams,
) *AsyncTaskRunner {
	if params.Clock == nil {
		params.Clock = clock.New()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &AsyncTaskRunner{
		ctx:     ctx,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
		task:    task,
		handler: handler,
		params:  params,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return errors.New("async-task-runner: already started")
	}

	if r.params.UpdateInterval <= 0 {
		return errors.New("async-task-runner: invalid update interval")
	}

	r.started = true

	go r.run()

	return nil
}

// Stop ends asynchronous task processing and waits for the goroutine to finish.
func (r *AsyncTaskRunner) Stop() error {
	r.cancel()

	r.mu.Lock()
	started := r.started
	r.mu.Unlock()

	if started {
		<-r.doneCh
	}

	return nil
}

func (r *AsyncTaskRunner) run() {
	defer close(r.doneCh)

	ticker := r.params.Clock.Ticker(r.params.UpdateInterval)
	defer ticker.Stop()

	if r.runTask() && r.params.ExitOnSuccess {
		return
	}

	for {
		select {
		case <-ticker.C:
			if r.runTask() && r.params.ExitOnSuccess {
				return
			}

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() bool {
	if err := r.task.Run(); err != nil {
		if r.handler != nil {
			r.handler.HandleError(err)
		}

		return false
	}

	return true
}
