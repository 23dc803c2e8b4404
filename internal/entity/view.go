package entity

// Response type discriminators.
const (
	TypeGameState = "game.state"
	TypeGameMove  = "game.move"
	TypeGameReset = "game.reset"

	TypeLeaderboardGet       = "leaderboard.get"
	TypeLeaderboardRecordWin = "leaderboard.recordWin"

	TypeMatchmakingPaired  = "matchmaking.paired"
	TypeMatchmakingWaiting = "matchmaking.waiting"
)

// Viewer is the caller a view was rendered for.
type Viewer struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GameView is a session annotated with the caller's role.
type GameView struct {
	Type string `json:"type"`
	*Game
	You Viewer `json:"you"`
}

func NewGameView(viewType string, game *Game, identity string) *GameView {
	return &GameView{
		Type: viewType,
		Game: game,
		You: Viewer{
			Username: identity,
			Role:     game.Players.Role(identity),
		},
	}
}

type LeaderboardView struct {
	Type     string             `json:"type"`
	PoolID   string             `json:"poolId"`
	Username string             `json:"username"`
	MyWins   int64              `json:"myWins"`
	Entries  []LeaderboardEntry `json:"entries"`
}

type WinRecord struct {
	Type     string `json:"type"`
	PoolID   string `json:"poolId"`
	Username string `json:"username"`
	MyWins   int64  `json:"myWins"`
}

// Pairing is the matchmaking answer: join an existing session, or wait in a new one.
type Pairing struct {
	Type      string `json:"type"`
	Outcome   string `json:"outcome"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

const (
	PairingPaired  = "paired"
	PairingWaiting = "waiting"
)
