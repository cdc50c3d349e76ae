package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func (that *Server) handleGameState(ctx context.Context, _ *Message, conn *connection) error {
	game, err := that.uGame.GetGame(ctx)
	if err != nil {
		that.sendError(conn, "game is unavailable")
		return fmt.Errorf("failed to get game: %w", err)
	}

	return conn.send(actionGameState, Payload{Game: &game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		that.sendError(conn, "malformed payload")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Cell == nil {
		that.sendError(conn, "cell is required")
		return nil
	}

	game, err := that.uGame.MakeTurn(ctx, *payloadReq.Cell)
	if err != nil {
		that.sendError(conn, "game is unavailable")
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return conn.send(actionGameTurn, Payload{Game: &game})
}
