package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getGame")

	game, err := that.uGame.GetGame(r.Context())
	if err != nil {
		log.Error("failed to get game", "error", err)
		that.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "game is unavailable"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "makeTurn")

	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell must be an integer"})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), cell)
	if err != nil {
		log.Error("failed to make turn", "cell", cell, "error", err)
		that.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "game is unavailable"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) getScore(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getScore")

	scoreboard, err := that.uGame.GetScoreboard(r.Context())
	if err != nil {
		log.Error("failed to get scoreboard", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "score is unavailable"})
		return
	}

	that.writeJSON(w, http.StatusOK, scoreboard)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
