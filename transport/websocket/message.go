package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-solo/internal/surface"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const (
	actionGameState   = "game:state"
	actionGameTurn    = "game:turn"
	actionBoardUpdate = "board:update"
	actionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell  *int                `json:"cell,omitempty"`
	Game  *tictactoe.Snapshot `json:"game,omitempty"`
	View  *surface.View       `json:"view,omitempty"`
	Error string              `json:"error,omitempty"`
}
