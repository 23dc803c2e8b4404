package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Mark is the symbol a player places on the board. EmptyCell marks a free cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

var (
	ErrUnknownMark = errors.New("unknown mark")

	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// MarshalJSON encodes an empty cell as null.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = EmptyCell
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode mark: %w", err)
	}

	mark := Mark(raw)
	if mark != EmptyCell && !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrUnknownMark, raw)
	}

	*that = mark
	return nil
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// Winner - returns the mark that fills one of the win combos, or EmptyCell when there is none.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// IsTie - the board is full and nobody has won.
func (that Board) IsTie() bool {
	return that.Winner() == EmptyCell && that.IsFull()
}
