package syssched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/servus/components/status"
)

type testAsyncTaskRunnerTask struct {
	mu        sync.Mutex
	err       error
	callCount int
}

func (t *testAsyncTaskRunnerTask) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callCount++

	return t.err
}

func (t *testAsyncTaskRunnerTask) getCallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.callCount
}

func (t *testAsyncTaskRunnerTask) setError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.err = err
}

type testAsyncTaskRunnerErrorHandler struct {
	mu   sync.Mutex
	errs []error
}

func (h *testAsyncTaskRunnerErrorHandler) HandleError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errs = append(h.errs, err)
}

func (h *testAsyncTaskRunnerErrorHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.errs)
}

func TestAsyncTaskRunnerExitOnSuccess(t *testing.T) {
	task := &testAsyncTaskRunnerTask{
		err: status.StatusNotSupported,
	}
	handler := &testAsyncTaskRunnerErrorHandler{}

	runner := NewAsyncTaskRunner(context.Background(), task, handler, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 100,
		ExitOnSuccess:  true,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 2 {
		time.Sleep(time.Millisecond * 50)
	}

	task.setError(nil)

	for task.getCallCount() < 3 {
		time.Sleep(time.Millisecond * 50)
	}

	require.Nil(t, runner.Stop())
	require.GreaterOrEqual(t, handler.count(), 2)
}

func TestAsyncTaskRunnerMockClock(t *testing.T) {
	task := &testAsyncTaskRunnerTask{}
	clk := clock.NewMock()

	runner := NewAsyncTaskRunner(context.Background(), task, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 100,
		Clock:          clk,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 1 {
		time.Sleep(time.Millisecond)
	}

	for n := 2; n <= 4; n++ {
		for task.getCallCount() < n {
			clk.Add(time.Millisecond * 100)
			time.Sleep(time.Millisecond)
		}
	}

	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerStartTwice(t *testing.T) {
	runner := NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
		AsyncTaskRunnerParams{UpdateInterval: time.Second})

	require.Nil(t, runner.Start())
	require.NotNil(t, runner.Start())
	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerStopWithoutStart(t *testing.T) {
	runner := NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
		AsyncTaskRunnerParams{UpdateInterval: time.Second})

	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerInvalidInterval(t *testing.T) {
	runner := NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
		AsyncTaskRunnerParams{})

	require.NotNil(t, runner.Start())
}
