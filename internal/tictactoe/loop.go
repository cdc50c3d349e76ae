package tictactoe

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrLoopStopped = errors.New("event loop is stopped")

const defaultLoopBuffer = 16

// Loop runs queued tasks one at a time on a single goroutine. It serializes everything that
// touches an Engine: caller requests and the engine's own delayed continuations.
type Loop struct {
	logger *slog.Logger

	tasks    chan func(ctx context.Context)
	done     chan struct{}
	stopOnce sync.Once
}

func NewLoop(logger *slog.Logger, buffer int) *Loop {
	if buffer <= 0 {
		buffer = defaultLoopBuffer
	}

	return &Loop{
		logger: logger.With("component", "loop"),
		tasks:  make(chan func(ctx context.Context), buffer),
		done:   make(chan struct{}),
	}
}

// Run processes tasks until ctx is done. It must be called once.
func (that *Loop) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")
	defer that.stop()

	log.Info("event loop started")

	for {
		select {
		case <-ctx.Done():
			log.Info("event loop stopped")
			return nil
		case task := <-that.tasks:
			task(ctx)
		}
	}
}

// Post enqueues task without waiting for it.
func (that *Loop) Post(ctx context.Context, task func(ctx context.Context)) error {
	select {
	case that.tasks <- task:
		return nil
	case <-that.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do enqueues task and waits until it has run.
func (that *Loop) Do(ctx context.Context, task func(ctx context.Context)) error {
	finished := make(chan struct{})

	err := that.Post(ctx, func(ctx context.Context) {
		defer close(finished)
		task(ctx)
	})
	if err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-that.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule enqueues task once delay has elapsed. A pending task is dropped if the loop stops first.
func (that *Loop) Schedule(delay time.Duration, task func(ctx context.Context)) {
	time.AfterFunc(delay, func() {
		select {
		case that.tasks <- task:
		case <-that.done:
		}
	})
}

func (that *Loop) stop() {
	that.stopOnce.Do(func() {
		close(that.done)
	})
}
