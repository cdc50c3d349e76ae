package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-solo/internal/surface"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const (
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	MakeTurn(ctx context.Context, cell int) (tictactoe.Snapshot, error)
	GetGame(ctx context.Context) (tictactoe.Snapshot, error)
}

type viewSource interface {
	View() surface.View
	Subscribe(ctx context.Context) (<-chan surface.View, func())
}

type handlerFunc func(ctx context.Context, message *Message, conn *connection) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	views    viewSource
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, views viewSource) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		views:  views,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionGameState: server.handleGameState,
		actionGameTurn:  server.handleGameTurn,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws}
	defer conn.close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	views, unsubscribe := that.views.Subscribe(ctx)
	defer unsubscribe()

	if err = that.handleGameState(ctx, &Message{Action: actionGameState}, conn); err != nil {
		log.Error("failed to send initial game", "error", err)
		return
	}

	view := that.views.View()
	if err = conn.send(actionBoardUpdate, Payload{View: &view}); err != nil {
		log.Error("failed to send initial board", "error", err)
		return
	}

	go that.forwardViews(ctx, views, conn)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// forwardViews pushes every board change to the client until the connection ends.
func (that *Server) forwardViews(ctx context.Context, views <-chan surface.View, conn *connection) {
	log := that.logger.With("method", "forwardViews")

	for {
		select {
		case <-ctx.Done():
			return
		case view, ok := <-views:
			if !ok {
				return
			}

			if err := conn.send(actionBoardUpdate, Payload{View: &view}); err != nil {
				log.Error("failed to push board update", "error", err)
				return
			}
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.sendError(conn, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			that.sendError(conn, "unknown action: "+message.Action)
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendError(conn *connection, text string) {
	if err := conn.send(actionError, Payload{Error: text}); err != nil {
		that.logger.Error("failed to send error", "error", err)
	}
}

// connection serializes writes; gorilla allows one concurrent writer.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.ws.Close()
}
