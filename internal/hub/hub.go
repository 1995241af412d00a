package hub

import (
	"context"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Code  string
	State engine.State
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	State engine.State // only used if creation happens
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub owns the live draft sessions, keyed by join code. Same actor
// shape as the sessions themselves.
type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	deps     session.Deps
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, deps session.Deps) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if sess := h.sessions[msg.Code]; sess != nil {
					msg.Reply <- sess
					break
				}
				sess := session.NewSession(h.ctx, msg.State, h.deps)
				h.sessions[msg.Code] = sess
				msg.Reply <- sess

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case EnsureSession:
				if sess := h.sessions[msg.Code]; sess != nil {
					msg.Reply <- sess
					break
				}
				sess := session.NewSession(h.ctx, msg.State, h.deps)
				h.sessions[msg.Code] = sess
				msg.Reply <- sess

			case RemoveSession:
				delete(h.sessions, msg.Code)

			case ShutdownHub:
				for _, sess := range h.sessions {
					sess.Inbox() <- session.Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}
