package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type memoryScore struct {
	mu      sync.Mutex
	scores  map[entity.Identity]uint
	history []string
}

// NewMemoryScoreRepository keeps the score for the lifetime of the process.
func NewMemoryScoreRepository() ScoreRepository {
	return &memoryScore{
		scores: make(map[entity.Identity]uint),
	}
}

func (that *memoryScore) IncrementScore(_ context.Context, identity entity.Identity) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores[identity]++

	return nil
}

func (that *memoryScore) Score(_ context.Context, identity entity.Identity) (uint, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.scores[identity], nil
}

func (that *memoryScore) AppendHistory(_ context.Context, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.history = append(that.history, text)

	return nil
}

func (that *memoryScore) History(_ context.Context) ([]string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	history := make([]string, len(that.history))
	copy(history, that.history)

	return history, nil
}

func (that *memoryScore) Reset(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = make(map[entity.Identity]uint)
	that.history = nil

	return nil
}
