package tictactoe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type State string

const (
	AwaitingHumanMove    State = "awaiting_human_move"
	AwaitingComputerMove State = "awaiting_computer_move"
	RoundOver            State = "round_over"
)

const (
	DefaultComputerDelay = time.Second
	DefaultRoundDelay    = 2 * time.Second
)

// BoardSurface is a projection of the board. The engine only writes to it.
type BoardSurface interface {
	SetCellText(index int, mark entity.Mark)
	SetCellHighlight(index int, highlight entity.Highlight)
	SetActivePlayerDecoration(identity entity.Identity, active bool)
}

// ScoreSink mirrors results outside the engine.
type ScoreSink interface {
	IncrementScore(ctx context.Context, identity entity.Identity) error
	AppendHistory(ctx context.Context, text string) error
}

// Scheduler runs task once after delay, on the same goroutine that drives the engine.
type Scheduler interface {
	Schedule(delay time.Duration, task func(ctx context.Context))
}

type Randomizer interface {
	Intn(n int) int
}

type Score struct {
	Human    uint `json:"human"`
	Computer uint `json:"computer"`
}

// Outcome is how the last finished round ended. Winner is empty on a draw.
type Outcome struct {
	Winner entity.Identity `json:"winner,omitempty"`
	Win    *entity.Win     `json:"win,omitempty"`
	Draw   bool            `json:"draw"`
}

type Snapshot struct {
	Board       entity.Board    `json:"board"`
	State       State           `json:"state"`
	Active      entity.Identity `json:"active"`
	IsActive    bool            `json:"is_active"`
	Human       entity.Player   `json:"human"`
	Computer    entity.Player   `json:"computer"`
	Score       Score           `json:"score"`
	Round       int             `json:"round"`
	LastOutcome *Outcome        `json:"last_outcome,omitempty"`
}

type Options struct {
	ComputerDelay time.Duration
	RoundDelay    time.Duration
}

// Engine is the game state machine. It is not safe for concurrent use: every call,
// including scheduled continuations, must come from one goroutine (see Loop).
type Engine struct {
	logger *slog.Logger

	surface   BoardSurface
	sink      ScoreSink
	scheduler Scheduler
	random    Randomizer

	computerDelay time.Duration
	roundDelay    time.Duration

	board    entity.Board
	human    *entity.Player
	computer *entity.Player
	active   *entity.Player
	state    State
	isActive bool
	score    Score
	round    int
	outcome  *Outcome
}

func NewEngine(logger *slog.Logger, surface BoardSurface, sink ScoreSink, scheduler Scheduler, random Randomizer, opts Options) *Engine {
	if opts.ComputerDelay <= 0 {
		opts.ComputerDelay = DefaultComputerDelay
	}
	if opts.RoundDelay <= 0 {
		opts.RoundDelay = DefaultRoundDelay
	}

	engine := &Engine{
		logger: logger.With("component", "engine"),

		surface:   surface,
		sink:      sink,
		scheduler: scheduler,
		random:    random,

		computerDelay: opts.ComputerDelay,
		roundDelay:    opts.RoundDelay,

		human:    entity.NewPlayer(entity.Human, entity.Cross),
		computer: entity.NewPlayer(entity.Computer, entity.Circle),
		isActive: true,
		round:    1,
	}

	engine.clearCells()
	engine.setActivePlayer(engine.human)

	return engine
}

// SubmitMove places the human's mark on cell. Moves out of turn, out of range or onto an
// occupied cell are ignored.
func (that *Engine) SubmitMove(ctx context.Context, cell int) {
	if !that.isActive || that.state != AwaitingHumanMove {
		return
	}

	if err := that.placeMark(that.human, cell); err != nil {
		return
	}

	if that.finishOnWin(ctx) {
		return
	}

	that.startComputerTurn()
}

func (that *Engine) Snapshot() Snapshot {
	snapshot := Snapshot{
		Board:    that.board,
		State:    that.state,
		Active:   that.active.Identity,
		IsActive: that.isActive,
		Human:    *that.human,
		Computer: *that.computer,
		Score:    that.score,
		Round:    that.round,
	}

	if that.outcome != nil {
		outcome := *that.outcome
		snapshot.LastOutcome = &outcome
	}

	return snapshot
}

func (that *Engine) startComputerTurn() {
	that.setActivePlayer(that.computer)
	that.scheduler.Schedule(that.computerDelay, that.playComputerTurn)
}

func (that *Engine) playComputerTurn(ctx context.Context) {
	if that.state != AwaitingComputerMove {
		return
	}

	candidates := that.board.EmptyIndices()
	if len(candidates) == 0 {
		that.finishDraw(ctx)
		return
	}

	cell := chooseCell(that.random, candidates)
	if err := that.placeMark(that.computer, cell); err != nil {
		that.logger.Error("computer move rejected", "cell", cell, "error", err)
		return
	}

	that.logger.Debug("computer moved", "cell", cell, "mark", that.computer.Mark)

	if that.finishOnWin(ctx) {
		return
	}

	if len(candidates) == 1 {
		that.finishDraw(ctx)
		return
	}

	that.setActivePlayer(that.human)
}

func (that *Engine) nextRound(ctx context.Context) {
	if that.state != RoundOver {
		return
	}

	that.clearDecoration()
	that.clearCells()

	that.human.Toggle()
	that.computer.Toggle()

	that.round++
	that.isActive = true

	that.logger.Info("round started", "round", that.round, "human_mark", that.human.Mark)

	if that.computer.Mark == entity.Cross {
		that.startComputerTurn()
		return
	}

	that.setActivePlayer(that.human)
}

func (that *Engine) placeMark(player *entity.Player, cell int) error {
	if err := that.board.SetCell(cell, player.Mark); err != nil {
		return fmt.Errorf("failed to place mark: %w", err)
	}

	that.surface.SetCellText(cell, player.Mark)

	return nil
}

// finishOnWin ends the round if the board holds a completed line.
func (that *Engine) finishOnWin(ctx context.Context) bool {
	win, ok := that.board.CheckWinner()
	if !ok {
		return false
	}

	winner := that.playerByMark(win.Mark)

	highlight := entity.WinHighlight(winner.Identity)
	for _, index := range win.Combination {
		that.surface.SetCellHighlight(index, highlight)
	}

	if winner.IsHuman() {
		that.score.Human++
	} else {
		that.score.Computer++
	}

	if err := that.sink.IncrementScore(ctx, winner.Identity); err != nil {
		that.logger.Error("failed to increment score", "player", winner.Identity, "error", err)
	}

	verdict := "Loss"
	if winner.IsHuman() {
		verdict = "Win"
	}
	that.appendHistory(ctx, verdict)

	that.outcome = &Outcome{Winner: winner.Identity, Win: &win}
	that.logger.Info("round won", "round", that.round, "winner", winner.Identity, "combination", win.Combination)

	that.endRound()

	return true
}

func (that *Engine) finishDraw(ctx context.Context) {
	that.appendHistory(ctx, "Draw")

	that.outcome = &Outcome{Draw: true}
	that.logger.Info("round drawn", "round", that.round)

	that.endRound()
}

func (that *Engine) appendHistory(ctx context.Context, verdict string) {
	text := fmt.Sprintf("%s %d:%d", verdict, that.score.Human, that.score.Computer)
	if err := that.sink.AppendHistory(ctx, text); err != nil {
		that.logger.Error("failed to append history", "entry", text, "error", err)
	}
}

func (that *Engine) endRound() {
	that.isActive = false
	that.state = RoundOver
	that.scheduler.Schedule(that.roundDelay, that.nextRound)
}

func (that *Engine) setActivePlayer(player *entity.Player) {
	that.active = player
	if player.IsHuman() {
		that.state = AwaitingHumanMove
	} else {
		that.state = AwaitingComputerMove
	}

	that.clearDecoration()
	that.surface.SetActivePlayerDecoration(player.Identity, true)
}

func (that *Engine) clearDecoration() {
	that.surface.SetActivePlayerDecoration(entity.Human, false)
	that.surface.SetActivePlayerDecoration(entity.Computer, false)
}

func (that *Engine) clearCells() {
	that.board.Clear()
	for i := range that.board {
		that.surface.SetCellText(i, entity.Empty)
		that.surface.SetCellHighlight(i, entity.HighlightNone)
	}
}

func (that *Engine) playerByMark(mark entity.Mark) *entity.Player {
	if that.human.Mark == mark {
		return that.human
	}
	return that.computer
}
