package entity

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_CheckWinner(t *testing.T) {
	for _, combo := range WinningCombinations {
		for _, mark := range []Mark{Cross, Circle} {
			t.Run(fmt.Sprintf("%s on %v", mark, combo), func(t *testing.T) {
				// Given: a board where only the combination is filled with the mark
				var board Board
				for _, index := range combo {
					board[index] = mark
				}

				// When: checking for a winner
				win, ok := board.CheckWinner()

				// Then: the mark wins on exactly that triple
				require.True(t, ok)
				assert.Equal(t, Win{Mark: mark, Combination: combo}, win)
			})
		}
	}

	t.Run("Empty board has no winner", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: checking for a winner
		_, ok := board.CheckWinner()

		// Then: there is none
		assert.False(t, ok)
	})

	t.Run("Full board without a line has no winner", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			Cross, Circle, Cross,
			Cross, Circle, Circle,
			Circle, Cross, Cross,
		}

		// When: checking for a winner
		_, ok := board.CheckWinner()

		// Then: there is none
		assert.False(t, ok)
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		// Given: a top row holding both marks
		board := Board{Cross, Cross, Circle}

		// When: checking for a winner
		_, ok := board.CheckWinner()

		// Then: there is none
		assert.False(t, ok)
	})

	t.Run("Rows are reported before diagonals and diagonals before columns", func(t *testing.T) {
		// Given: a board completing row 0, the main diagonal and column 0 at once
		board := Board{
			Cross, Cross, Cross,
			Cross, Cross, Empty,
			Cross, Empty, Cross,
		}

		// When: checking for a winner
		win, ok := board.CheckWinner()

		// Then: the first row wins
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 1, 2}, win.Combination)

		// And: without the row, the diagonal wins over the column
		board[1] = Circle
		win, ok = board.CheckWinner()
		require.True(t, ok)
		assert.Equal(t, [3]int{0, 4, 8}, win.Combination)
	})
}

func TestBoard_SetCell(t *testing.T) {
	t.Run("Places the mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: setting cell 4
		err := board.SetCell(4, Cross)

		// Then: the cell holds the mark
		require.NoError(t, err)
		assert.Equal(t, Cross, board[4])
	})

	t.Run("Occupied cell is left unchanged", func(t *testing.T) {
		// Given: a board with cell 0 taken by Cross
		var board Board
		require.NoError(t, board.SetCell(0, Cross))
		before := board

		// When: Circle tries the same cell
		err := board.SetCell(0, Circle)

		// Then: an invalid move is reported and the board did not change
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, board)
	})

	t.Run("Out of range indices are rejected", func(t *testing.T) {
		for _, index := range []int{-1, 9, 20} {
			// Given: an empty board
			var board Board

			// When: setting an index outside the grid
			err := board.SetCell(index, Cross)

			// Then: an invalid cell error is returned
			require.ErrorIs(t, err, apperror.ErrInvalidMove)
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.Equal(t, Board{}, board)
		}
	})
}

func TestBoard_EmptyIndices(t *testing.T) {
	t.Run("Lists free cells in order", func(t *testing.T) {
		// Given: a partially filled board
		board := Board{
			Cross, Empty, Circle,
			Empty, Cross, Empty,
			Empty, Empty, Circle,
		}

		// When: asking for empty indices
		indices := board.EmptyIndices()

		// Then: they come back ascending
		assert.Equal(t, []int{1, 3, 5, 6, 7}, indices)
	})

	t.Run("Full board has none", func(t *testing.T) {
		// Given: a full board
		board := Board{Cross, Circle, Cross, Cross, Circle, Circle, Circle, Cross, Cross}

		// When/Then: no empty indices remain
		assert.Empty(t, board.EmptyIndices())
	})
}

func TestBoard_Clear(t *testing.T) {
	// Given: a board with marks
	board := Board{Cross, Circle, Cross, Empty, Circle}

	// When: clearing it
	board.Clear()

	// Then: every cell is empty
	assert.Equal(t, Board{}, board)
	assert.Len(t, board.EmptyIndices(), BoardSize)
}

func TestMark_String(t *testing.T) {
	assert.Equal(t, "-", Empty.String())
	assert.Equal(t, "X", Cross.String())
	assert.Equal(t, "O", Circle.String())
}
