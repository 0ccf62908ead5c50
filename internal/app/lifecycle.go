// Package app runs the client's long-lived tasks under signal-driven shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long Run waits for tasks after cancellation.
const DefaultShutdownTimeout = 2 * time.Second

// Task is a unit of work that runs until it finishes or ctx is cancelled.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a function into the Task interface.
type TaskFunc func(ctx context.Context) error

// Run calls f.
func (f TaskFunc) Run(ctx context.Context) error { return f(ctx) }

// Lifecycle runs a set of named tasks together. The first task to return,
// a termination signal, or cancellation of the parent context ends all of them.
type Lifecycle struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration

	mu    sync.Mutex
	tasks []namedTask
}

type namedTask struct {
	name string
	task Task
}

// NewLifecycle creates a Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger, shutdownTimeout: DefaultShutdownTimeout}
}

// SetShutdownTimeout changes how long Run waits for tasks to return once
// shutdown has begun. Tasks blocked on terminal input may never return.
func (l *Lifecycle) SetShutdownTimeout(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shutdownTimeout = d
}

// Add registers a named task.
//
// Precondition: name must be non-empty; task must be non-nil.
func (l *Lifecycle) Add(name string, task Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = append(l.tasks, namedTask{name: name, task: task})
}

// Run starts every task and blocks until shutdown completes.
//
// Postcondition: Returns the first task error, or nil when tasks finished
// cleanly or were stopped by a signal or the parent context.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()
	l.mu.Lock()
	tasks := append([]namedTask(nil), l.tasks...)
	timeout := l.shutdownTimeout
	l.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(tasks))
	var wg sync.WaitGroup
	for _, nt := range tasks {
		nt := nt
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Debug("starting task", zap.String("task", nt.name))
			err := nt.task.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				l.logger.Error("task failed",
					zap.String("task", nt.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(start)),
				)
				errCh <- fmt.Errorf("task %s: %w", nt.name, err)
			} else {
				l.logger.Debug("task finished", zap.String("task", nt.name))
			}
			cancel()
		}()
	}

	<-ctx.Done()
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		l.logger.Info("shutting down", zap.Error(cause))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		l.logger.Warn("tasks did not stop before timeout", zap.Duration("timeout", timeout))
	}

	l.logger.Debug("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
