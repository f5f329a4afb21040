package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/DoyleJ11/portal-race/internal/hub"
	"github.com/DoyleJ11/portal-race/internal/lobby"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const replyTimeout = 2 * time.Second

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type gameResponse struct {
	Code    string           `json:"code"`
	Version int              `json:"version"`
	Clients int              `json:"clients"`
	State   *engine.Snapshot `json:"state,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func lookup(h *hub.Hub, code string) *lobby.Lobby {
	reply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
	return <-reply
}

func CreateGame(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			if lookup(h, c) == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.CreateLobby{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create game", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, gameResponse{Code: code})
	}
}

func ListGames(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []string, 1)
		h.Inbox() <- hub.ListLobbies{Reply: reply}
		writeJSON(w, http.StatusOK, struct {
			Codes []string `json:"codes"`
		}{Codes: <-reply})
	}
}

func GetGame(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		lb := lookup(h, code)
		if lb == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		reply := make(chan lobby.View, 1)
		select {
		case lb.Inbox() <- lobby.GetState{Reply: reply}:
		case <-lb.Done():
			http.Error(w, "game closed", http.StatusGone)
			return
		}
		select {
		case v := <-reply:
			writeJSON(w, http.StatusOK, gameResponse{Code: code, Version: v.Version, Clients: v.NumClients, State: &v.State})
		case <-time.After(replyTimeout):
			http.Error(w, "game busy", http.StatusServiceUnavailable)
		}
	}
}

func RestartGame(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb := lookup(h, chi.URLParam(r, "code"))
		if lb == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		select {
		case lb.Inbox() <- lobby.Restart{}:
			w.WriteHeader(http.StatusAccepted)
		case <-lb.Done():
			http.Error(w, "game closed", http.StatusGone)
		}
	}
}

func DeleteGame(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if lookup(h, code) == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		h.Inbox() <- hub.RemoveLobby{Code: code}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
