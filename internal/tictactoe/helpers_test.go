package tictactoe

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scheduledTask struct {
	delay time.Duration
	task  func(ctx context.Context)
}

// manualScheduler holds continuations until the test runs them.
type manualScheduler struct {
	pending []scheduledTask
}

func (that *manualScheduler) Schedule(delay time.Duration, task func(ctx context.Context)) {
	that.pending = append(that.pending, scheduledTask{delay: delay, task: task})
}

func (that *manualScheduler) runNext(t *testing.T, ctx context.Context) time.Duration {
	t.Helper()

	require.NotEmpty(t, that.pending, "no continuation is pending")

	next := that.pending[0]
	that.pending = that.pending[1:]
	next.task(ctx)

	return next.delay
}

type recordingSurface struct {
	cells      [entity.BoardSize]entity.Mark
	highlights [entity.BoardSize]entity.Highlight
	decorated  map[entity.Identity]bool
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{decorated: make(map[entity.Identity]bool)}
}

func (that *recordingSurface) SetCellText(index int, mark entity.Mark) {
	that.cells[index] = mark
}

func (that *recordingSurface) SetCellHighlight(index int, highlight entity.Highlight) {
	that.highlights[index] = highlight
}

func (that *recordingSurface) SetActivePlayerDecoration(identity entity.Identity, active bool) {
	that.decorated[identity] = active
}

type recordingSink struct {
	increments []entity.Identity
	history    []string
}

func (that *recordingSink) IncrementScore(_ context.Context, identity entity.Identity) error {
	that.increments = append(that.increments, identity)
	return nil
}

func (that *recordingSink) AppendHistory(_ context.Context, text string) error {
	that.history = append(that.history, text)
	return nil
}

type mockSink struct {
	mock.Mock
}

func (that *mockSink) IncrementScore(ctx context.Context, identity entity.Identity) error {
	args := that.Called(ctx, identity)
	return args.Error(0)
}

func (that *mockSink) AppendHistory(ctx context.Context, text string) error {
	args := that.Called(ctx, text)
	return args.Error(0)
}

type randomFunc func(n int) int

func (that randomFunc) Intn(n int) int {
	return that(n)
}

// scriptedRandom returns the given candidate positions in order, then the first candidate.
func scriptedRandom(picks ...int) randomFunc {
	return func(int) int {
		if len(picks) == 0 {
			return 0
		}
		next := picks[0]
		picks = picks[1:]
		return next
	}
}

var lastCandidate = randomFunc(func(n int) int { return n - 1 })

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	engine    *Engine
	surface   *recordingSurface
	sink      *recordingSink
	scheduler *manualScheduler
}

func newFixture(random Randomizer) *fixture {
	surface := newRecordingSurface()
	sink := &recordingSink{}
	scheduler := &manualScheduler{}

	return &fixture{
		engine:    NewEngine(discardLogger(), surface, sink, scheduler, random, Options{}),
		surface:   surface,
		sink:      sink,
		scheduler: scheduler,
	}
}
