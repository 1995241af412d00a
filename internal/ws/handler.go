package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/hero"
	"github.com/kwhitford/e7-draft-backend/internal/hub"
	"github.com/kwhitford/e7-draft-backend/internal/session"
	"github.com/kwhitford/e7-draft-backend/internal/types"
)

func Handler(h *hub.Hub, catalog *hero.Catalog, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := randID(6)

		sess.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() { sess.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := toServerMessage(snap)
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}
			// Identifiers are validated against the catalog before they
			// reach the engine.
			if !catalog.Valid(cmd.HeroID) {
				log.Debug("rejected unknown hero", zap.String("hero_id", cmd.HeroID))
				writeError(r.Context(), conn, hero.ErrUnknownHero.Error())
				continue
			}

			sess.Inbox() <- session.FromClient{ClientID: clientID, Cmd: cmd}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toServerMessage(snap session.Snapshot) types.ServerMessage {
	if snap.Err != "" {
		return types.ServerMessage{Type: "Error", Version: snap.Version, Error: snap.Err}
	}
	return types.ServerMessage{
		Type:           "StateSnapshot",
		Version:        snap.Version,
		State:          &snap.State,
		Recommended:    snap.Recommended,
		WinProbability: snap.WinProbability,
	}
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	side, ok := parseSide(m.Side)
	if !ok {
		return engine.Command{}, false
	}

	switch m.Type {
	case "SetPreBan":
		return engine.Command{Type: engine.CmdSetPreBan, Side: side, HeroID: m.HeroID}, true
	case "LockPick":
		return engine.Command{Type: engine.CmdLockPick, Side: side, HeroID: m.HeroID}, true
	case "SetPostBan":
		return engine.Command{Type: engine.CmdSetPostBan, Side: side, HeroID: m.HeroID}, true
	default:
		return engine.Command{}, false
	}
}

func parseSide(side string) (engine.Side, bool) {
	switch side {
	case "me":
		return engine.SideMe, true
	case "enemy":
		return engine.SideEnemy, true
	default:
		return "", false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
