package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DoyleJ11/portal-race/internal/engine"
	"github.com/DoyleJ11/portal-race/internal/hub"
	"github.com/DoyleJ11/portal-race/internal/lobby"
	"github.com/DoyleJ11/portal-race/internal/types"
	ptypes "github.com/DoyleJ11/portal-race/pkg/types"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errUnknownMessage = errors.New("unknown message type")

const (
	writeTimeout    = 3 * time.Second
	readIdleTimeout = 10 * time.Minute
)

func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *lobby.Lobby, 1)
		h.Inbox() <- hub.GetLobby{Code: code, Reply: reply}
		lb := <-reply
		if lb == nil {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			log.Debug("websocket accept", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan lobby.Snapshot, 32)
		clientID := uuid.NewString()
		clog := log.With(zap.String("lobby", code), zap.String("client", clientID))

		lb.Inbox() <- lobby.Join{ClientID: clientID, Outbox: out}
		defer func() {
			select {
			case lb.Inbox() <- lobby.Leave{ClientID: clientID}:
			case <-lb.Done():
			}
		}()
		clog.Info("client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{
					Type:    ptypes.MsgStateSnapshot,
					Version: snap.Version,
					State:   &snap.State,
					Events:  snap.Events,
				}
				if err := writeJSON(writeCtx, conn, msg); err != nil {
					clog.Debug("write snapshot", zap.Error(err))
					return
				}
			}
			// lobby dropped us or shut down
			_ = conn.Close(websocket.StatusGoingAway, "lobby closed")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readIdleTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					clog.Info("client disconnected")
				default:
					clog.Debug("read", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = writeJSON(r.Context(), conn, types.ServerMessage{Type: ptypes.MsgError, Error: "bad json"})
				continue
			}

			msg, err := toLobbyMsg(cm)
			if err != nil {
				_ = writeJSON(r.Context(), conn, types.ServerMessage{Type: ptypes.MsgError, Error: err.Error()})
				continue
			}

			select {
			case lb.Inbox() <- msg:
			case <-lb.Done():
				return
			}
		}
	}
}

func writeJSON(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func toLobbyMsg(m types.ClientMessage) (lobby.Msg, error) {
	switch m.Type {
	case ptypes.MsgInput:
		team, err := engine.ParseTeam(m.Team)
		if err != nil {
			return nil, err
		}
		cmd, ok := engine.ParseCommand(m.Command)
		if !ok {
			return nil, fmt.Errorf("unknown command %q", m.Command)
		}
		return lobby.Input{Team: team, Cmd: cmd}, nil
	case ptypes.MsgRestart:
		return lobby.Restart{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMessage, m.Type)
	}
}
