package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/kwhitford/e7-draft-backend/internal/engine"
	"github.com/kwhitford/e7-draft-backend/internal/predict"
)

// Recommender produces pick suggestions for the upcoming own turns.
// Returns nil when it is not my turn.
type Recommender interface {
	RecommendNext(s engine.State) ([]string, error)
}

// Deps are the collaborators a session consults when building
// snapshots. Predictor may be nil when no model is configured.
type Deps struct {
	Recommender Recommender
	Predictor   predict.Predictor
	Logger      *zap.Logger
}

type Msg interface{ isSessionMsg() }

type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetView struct {
	Reply chan View
}

func (GetView) isSessionMsg() {}

// Snapshot is what clients see after every accepted event: the state,
// suggestions when the next slots are mine, and the win probability
// once the draft completes. Err is set only on per-client rejections.
type Snapshot struct {
	Version        int
	State          engine.State
	Recommended    []string
	WinProbability *float64
	Err            string
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

// Session serializes all draft events for one active draft. Only the
// session goroutine touches the state, which is the whole concurrency
// story: callers just send messages.
type Session struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	deps    Deps
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewSession(parent context.Context, initial engine.State, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:   make(chan Msg, 64),
		state:   initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		deps:    deps,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.snapshot()

			case Leave:
				// The actor is the only sender, so closing here is safe
				// and lets the client's writer loop exit.
				if ch, ok := s.clients[msg.ClientID]; ok {
					delete(s.clients, msg.ClientID)
					close(ch)
				}

			case FromClient:
				_, newState, err := engine.Apply(s.state, msg.Cmd)
				if err != nil {
					s.reject(msg.ClientID, err)
					break
				}
				s.state = newState
				s.version++
				s.broadcast(s.snapshot())

			case GetView:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.state,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// snapshot assembles the client view for the current state.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{Version: s.version, State: s.state}

	if s.deps.Recommender != nil {
		recs, err := s.deps.Recommender.RecommendNext(s.state)
		if err != nil {
			s.deps.Logger.Warn("recommendation failed", zap.Error(err))
		} else {
			snap.Recommended = recs
		}
	}

	if s.state.Completed() && s.deps.Predictor != nil {
		if v, err := predict.VectorFromState(s.state); err == nil {
			if p, err := s.deps.Predictor.Predict(v); err == nil {
				snap.WinProbability = &p
			} else {
				s.deps.Logger.Warn("win prediction failed", zap.Error(err))
			}
		}
	}
	return snap
}

// reject tells only the offending client. State and version are
// untouched, so other clients see nothing.
func (s *Session) reject(clientID string, err error) {
	ch, ok := s.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- Snapshot{Version: s.version, State: s.state, Err: err.Error()}:
	default:
	}
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

// Expose the inbox so tests or the WS layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }
