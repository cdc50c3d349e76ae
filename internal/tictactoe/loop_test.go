package tictactoe

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (context.Context, *Loop) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(discardLogger(), 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = loop.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	return ctx, loop
}

func TestLoop_Do(t *testing.T) {
	t.Run("Runs tasks in submission order", func(t *testing.T) {
		// Given: a running loop
		ctx, loop := startLoop(t)

		// When: several tasks are posted and the last one is awaited
		var order []int
		for i := 0; i < 5; i++ {
			require.NoError(t, loop.Post(ctx, func(context.Context) {
				order = append(order, i)
			}))
		}
		require.NoError(t, loop.Do(ctx, func(context.Context) {
			order = append(order, 5)
		}))

		// Then: they ran one after another in order
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
	})

	t.Run("Fails once the loop has stopped", func(t *testing.T) {
		// Given: a loop whose context was cancelled
		ctx, cancel := context.WithCancel(context.Background())
		loop := NewLoop(discardLogger(), 1)
		cancel()
		require.NoError(t, loop.Run(ctx))

		// When: work is submitted
		err := loop.Do(context.Background(), func(context.Context) {})

		// Then: the loop reports it is stopped
		require.ErrorIs(t, err, ErrLoopStopped)
	})
}

func TestLoop_Schedule(t *testing.T) {
	// Given: a running loop
	ctx, loop := startLoop(t)

	// When: a task is scheduled with a delay
	ran := make(chan time.Time, 1)
	scheduledAt := time.Now()
	loop.Schedule(20*time.Millisecond, func(context.Context) {
		ran <- time.Now()
	})

	// Then: it runs on the loop after the delay
	select {
	case at := <-ran:
		assert.GreaterOrEqual(t, at.Sub(scheduledAt), 20*time.Millisecond)
	case <-ctx.Done():
		t.Fatal("loop stopped before the task ran")
	case <-time.After(time.Second):
		t.Fatal("scheduled task never ran")
	}
}

func TestLoop_DrivesEngine(t *testing.T) {
	// Given: an engine whose continuations run on a live loop with short delays
	ctx, loop := startLoop(t)
	surface := newRecordingSurface()
	sink := &recordingSink{}

	var engine *Engine
	require.NoError(t, loop.Do(ctx, func(context.Context) {
		engine = NewEngine(discardLogger(), surface, sink, loop, lastCandidate, Options{
			ComputerDelay: 5 * time.Millisecond,
			RoundDelay:    5 * time.Millisecond,
		})
	}))

	snapshot := func() Snapshot {
		var s Snapshot
		require.NoError(t, loop.Do(ctx, func(context.Context) { s = engine.Snapshot() }))
		return s
	}

	// When: the human plays and the computer answers after its delay
	require.NoError(t, loop.Do(ctx, func(ctx context.Context) { engine.SubmitMove(ctx, 0) }))

	// Then: the computer's mark lands on the highest free cell
	require.Eventually(t, func() bool {
		return snapshot().State == AwaitingHumanMove
	}, time.Second, time.Millisecond)
	assert.Equal(t, entity.Circle, snapshot().Board[8])
}
