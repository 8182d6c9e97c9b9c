package autocomplete

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	mu    sync.Mutex
	calls int
	err   error
	done  chan struct{}
	stop  int
}

func (c *fakeCompleter) CompleteOverdue(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == c.stop {
		close(c.done)
	}
	return 1, c.err
}

type countingLogger struct {
	mu     sync.Mutex
	errors int
}

func (l *countingLogger) Info(string, ...interface{}) {}
func (l *countingLogger) Warn(string, ...interface{}) {}
func (l *countingLogger) Error(string, ...interface{}) {
	l.mu.Lock()
	l.errors++
	l.mu.Unlock()
}

func TestWorker_Run_SweepsUntilCancelled(t *testing.T) {
	completer := &fakeCompleter{done: make(chan struct{}), stop: 3, err: errors.New("db down")}
	logger := &countingLogger{}
	w := NewWorker(completer, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- w.Run(ctx) }()

	select {
	case <-completer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not sweep three times")
	}
	cancel()

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	assert.GreaterOrEqual(t, logger.errors, 3)
}

func TestWorker_Run_FirstSweepImmediately(t *testing.T) {
	completer := &fakeCompleter{done: make(chan struct{}), stop: 1}
	w := NewWorker(completer, time.Hour, &countingLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	select {
	case <-completer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("first sweep did not run at start")
	}
}

func TestNewWorker_DefaultInterval(t *testing.T) {
	w := NewWorker(&fakeCompleter{}, 0, &countingLogger{})
	assert.Equal(t, DefaultInterval, w.interval)
}
