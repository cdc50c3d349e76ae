package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

type Mark string

const (
	Empty  Mark = ""
	Cross  Mark = "X"
	Circle Mark = "O"
)

// emptyCellText is what a surface shows for an unset cell.
const emptyCellText = "-"

const BoardSize = 9

// WinningCombinations are scanned in this order; the first satisfied triple is reported.
var WinningCombinations = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 4, 8},
	{2, 4, 6},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
}

func (that Mark) String() string {
	if that == Empty {
		return emptyCellText
	}
	return string(that)
}

// Opposite returns the complementary mark. Empty stays Empty.
func (that Mark) Opposite() Mark {
	switch that {
	case Cross:
		return Circle
	case Circle:
		return Cross
	default:
		return Empty
	}
}

// Win describes a completed line.
type Win struct {
	Mark        Mark   `json:"mark"`
	Combination [3]int `json:"combination"`
}

// Board is the 3x3 grid stored row-major.
type Board [BoardSize]Mark

func (that *Board) Clear() {
	for i := range that {
		that[i] = Empty
	}
}

// SetCell places mark on an empty cell. The board is left untouched on error.
func (that *Board) SetCell(index int, mark Mark) error {
	if index < 0 || index >= len(that) {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, index)
	}

	if that[index] != Empty {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, index)
	}

	that[index] = mark

	return nil
}

func (that *Board) EmptyIndices() []int {
	indices := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			indices = append(indices, i)
		}
	}

	return indices
}

func (that *Board) CheckWinner() (Win, bool) {
	for _, combo := range WinningCombinations {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return Win{Mark: a, Combination: combo}, true
		}
	}

	return Win{}, false
}
