package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

// Status is the lifecycle stage of a session: waiting -> playing -> won | tie.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusTie     Status = "tie"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

func (that Status) IsValid() bool {
	switch that {
	case StatusWaiting, StatusPlaying, StatusWon, StatusTie:
		return true
	default:
		return false
	}
}

// Game is the persisted state of one session.
type Game struct {
	ID             string   `json:"sessionId"`
	Board          Board    `json:"board"`
	Turn           Mark     `json:"turn"`
	Status         Status   `json:"status"`
	Winner         Mark     `json:"winner"`
	WinnerUsername Username `json:"winnerUsername"`
	Players        Players  `json:"players"`
	UpdatedAt      int64    `json:"updatedAt"`
}

// NewGame - returns the initial waiting state of a session.
func NewGame(id string, now time.Time) *Game {
	return &Game{
		ID:        id,
		Turn:      PlayerX,
		Status:    StatusWaiting,
		UpdatedAt: now.UnixMilli(),
	}
}

// Validate - checks the invariants a decoded session must hold.
func (that *Game) Validate() error {
	if !that.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownGameStatus, that.Status)
	}

	if !that.Turn.IsPlayer() {
		return fmt.Errorf("%w: turn %q", ErrUnknownMark, that.Turn)
	}

	if that.Status == StatusWon && !that.Winner.IsPlayer() {
		return fmt.Errorf("%w: won without winner", ErrUnknownGameStatus)
	}

	return nil
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusTie
}

// Join - seats the identity if a slot is free and starts the game once both slots are taken.
// It reports whether the session changed.
func (that *Game) Join(identity string, now time.Time) bool {
	_, changed := that.Players.Assign(identity)

	if that.IsWaiting() && that.Players.IsFull() {
		that.Status = StatusPlaying
		changed = true
	}

	if changed {
		that.touch(now)
	}

	return changed
}

// MakeTurn - places the identity's mark on the cell. Preconditions are checked in a fixed order and
// a failed check leaves the session untouched.
func (that *Game) MakeTurn(identity string, cell int, now time.Time) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, cell)
	}

	mark, ok := that.Players.MarkOf(identity)
	if !ok {
		return fmt.Errorf("%w: spectators cannot play moves", apperror.ErrNotAPlayer)
	}

	if !that.IsPlaying() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, that.Status)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = mark
	that.updateGameState(mark)
	that.touch(now)

	return nil
}

// Reset - starts a new round between the same players.
func (that *Game) Reset(identity string, now time.Time) error {
	if _, ok := that.Players.MarkOf(identity); !ok {
		return fmt.Errorf("%w: only players can reset the game", apperror.ErrNotAPlayer)
	}

	that.Board = Board{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.WinnerUsername = ""

	if that.Players.IsFull() {
		that.Status = StatusPlaying
	} else {
		that.Status = StatusWaiting
	}

	that.touch(now)

	return nil
}

// updateGameState - settles the outcome after mover placed a mark. The turn stays with the winner.
func (that *Game) updateGameState(mover Mark) {
	if winner := that.Board.Winner(); winner != EmptyCell {
		that.Status = StatusWon
		that.Winner = winner
		that.WinnerUsername = that.Players.Occupant(winner)
		return
	}

	if that.Board.IsFull() {
		that.Status = StatusTie
		return
	}

	that.Turn = mover.Opponent()
}

// touch keeps UpdatedAt monotonically non-decreasing even if the clock steps back.
func (that *Game) touch(now time.Time) {
	if ms := now.UnixMilli(); ms > that.UpdatedAt {
		that.UpdatedAt = ms
	}
}
