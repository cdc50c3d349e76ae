package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// ScoreRepository keeps the running score and the round history of one game session.
type ScoreRepository interface {
	IncrementScore(ctx context.Context, identity entity.Identity) error
	Score(ctx context.Context, identity entity.Identity) (uint, error)

	AppendHistory(ctx context.Context, text string) error
	History(ctx context.Context) ([]string, error)

	Reset(ctx context.Context) error
}

type dbScore struct {
	client    *redis.Client
	sessionID string
}

// NewScoreRepository stores the score under keys namespaced by sessionID.
func NewScoreRepository(client *redis.Client, sessionID string) ScoreRepository {
	return &dbScore{
		client:    client,
		sessionID: sessionID,
	}
}

func (that *dbScore) IncrementScore(ctx context.Context, identity entity.Identity) error {
	if err := that.client.Incr(ctx, that.scoreKey(identity)).Err(); err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	return nil
}

func (that *dbScore) Score(ctx context.Context, identity entity.Identity) (uint, error) {
	score, err := that.client.Get(ctx, that.scoreKey(identity)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get score: %w", err)
	}

	return uint(score), nil
}

func (that *dbScore) AppendHistory(ctx context.Context, text string) error {
	if err := that.client.RPush(ctx, that.historyKey(), text).Err(); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (that *dbScore) History(ctx context.Context) ([]string, error) {
	history, err := that.client.LRange(ctx, that.historyKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return history, nil
}

func (that *dbScore) Reset(ctx context.Context) error {
	err := that.client.Del(ctx,
		that.scoreKey(entity.Human),
		that.scoreKey(entity.Computer),
		that.historyKey(),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to reset score: %w", err)
	}

	return nil
}

func (that *dbScore) scoreKey(identity entity.Identity) string {
	return "score:" + that.sessionID + ":" + string(identity)
}

func (that *dbScore) historyKey() string {
	return "history:" + that.sessionID
}
