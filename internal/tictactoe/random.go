package tictactoe

import (
	"math/rand"
	"time"
)

// NewRandomizer returns a seeded source for computer moves. A zero seed is taken from the clock.
func NewRandomizer(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
}

// chooseCell picks uniformly among the free cells. candidates must not be empty.
func chooseCell(random Randomizer, candidates []int) int {
	return candidates[random.Intn(len(candidates))]
}
