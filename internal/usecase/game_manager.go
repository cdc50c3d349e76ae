package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

// executor runs a task on the goroutine that owns the engine and waits for it.
type executor interface {
	Do(ctx context.Context, task func(ctx context.Context)) error
}

type gameEngine interface {
	SubmitMove(ctx context.Context, cell int)
	Snapshot() tictactoe.Snapshot
}

type scoreRepo interface {
	Score(ctx context.Context, identity entity.Identity) (uint, error)
	History(ctx context.Context) ([]string, error)
}

type Scoreboard struct {
	Human    uint     `json:"human"`
	Computer uint     `json:"computer"`
	History  []string `json:"history"`
}

type GameManager struct {
	logger *slog.Logger

	executor  executor
	engine    gameEngine
	scoreRepo scoreRepo
}

func NewGameManager(logger *slog.Logger, executor executor, engine gameEngine, scoreRepo scoreRepo) *GameManager {
	return &GameManager{
		logger: logger,

		executor:  executor,
		engine:    engine,
		scoreRepo: scoreRepo,
	}
}

// MakeTurn submits the human's move and returns the game as it stands afterwards.
// A rejected move is not an error: the unchanged game is returned.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (tictactoe.Snapshot, error) {
	var snapshot tictactoe.Snapshot

	err := that.executor.Do(ctx, func(ctx context.Context) {
		that.engine.SubmitMove(ctx, cell)
		snapshot = that.engine.Snapshot()
	})
	if err != nil {
		that.logger.With("method", "MakeTurn").Error("turn was not processed", "cell", cell, "error", err)
		return tictactoe.Snapshot{}, fmt.Errorf("failed to make turn: %w", err)
	}

	return snapshot, nil
}

func (that *GameManager) GetGame(ctx context.Context) (tictactoe.Snapshot, error) {
	var snapshot tictactoe.Snapshot

	err := that.executor.Do(ctx, func(context.Context) {
		snapshot = that.engine.Snapshot()
	})
	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to get game: %w", err)
	}

	return snapshot, nil
}

func (that *GameManager) GetScoreboard(ctx context.Context) (*Scoreboard, error) {
	human, err := that.scoreRepo.Score(ctx, entity.Human)
	if err != nil {
		return nil, fmt.Errorf("failed to get human score: %w", err)
	}

	computer, err := that.scoreRepo.Score(ctx, entity.Computer)
	if err != nil {
		return nil, fmt.Errorf("failed to get computer score: %w", err)
	}

	history, err := that.scoreRepo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return &Scoreboard{
		Human:    human,
		Computer: computer,
		History:  history,
	}, nil
}
