package engine

import (
	"errors"
	"slices"
)

var ErrWrongTurn = errors.New("out of turn")
var ErrDuplicateHero = errors.New("hero already drafted")
var ErrPreBanLimit = errors.New("pre-ban limit reached")
var ErrDraftCompleted = errors.New("draft already completed")
var ErrDraftNotCompleted = errors.New("draft not completed")
var ErrPostBanTaken = errors.New("post-ban already set")
var ErrPostBanNotPicked = errors.New("post-ban target not on opposing team")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Side string

const (
	SideMe    Side = "me"
	SideEnemy Side = "enemy"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideMe {
		return SideEnemy
	}
	return SideMe
}

const (
	PreBanLimit = 2
	TotalPicks  = 10
)

type State struct {
	// FirstPicker is empty until the first pick is recorded, then fixed
	// for the rest of the session.
	FirstPicker Side              `json:"first_picker,omitempty"`
	Cursor      int               `json:"cursor"`
	Picks       map[Side][]string `json:"picks"`
	PreBans     map[Side][]string `json:"pre_bans"`
	PostBans    map[Side]string   `json:"post_bans,omitempty"`
}

type CommandType string

const (
	CmdSetPreBan  CommandType = "SetPreBan"
	CmdLockPick   CommandType = "LockPick"
	CmdSetPostBan CommandType = "SetPostBan"
)

type Command struct {
	Type   CommandType
	Side   Side
	HeroID string
}

type EventType string

const (
	EvtPreBanSet      EventType = "PreBanSet"
	EvtHeroPicked     EventType = "HeroPicked"
	EvtTurnAdvanced   EventType = "TurnAdvanced"
	EvtDraftCompleted EventType = "DraftCompleted"
	EvtPostBanSet     EventType = "PostBanSet"
)

type Event struct {
	Type   EventType
	Side   Side
	HeroID string
}

// Apply validates cmd against s and returns the emitted events plus the
// next state. On error the returned state is s, untouched.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdSetPreBan:
		if len(s.PreBans[cmd.Side]) >= PreBanLimit {
			return nil, s, ErrPreBanLimit
		}
		if s.Drafted(cmd.HeroID) {
			return nil, s, ErrDuplicateHero
		}

		newState := s.clone()
		newState.PreBans[cmd.Side] = append(newState.PreBans[cmd.Side], cmd.HeroID)
		events := []Event{
			{Type: EvtPreBanSet, Side: cmd.Side, HeroID: cmd.HeroID},
		}
		return events, newState, nil

	case CmdLockPick:
		if s.Cursor >= TotalPicks {
			return nil, s, ErrDraftCompleted
		}

		// The first pick fixes the turn order for the session.
		first := s.FirstPicker
		if first == "" {
			if s.Cursor != 0 {
				return nil, s, ErrWrongTurn
			}
			first = cmd.Side
		}
		if Order(first)[s.Cursor] != cmd.Side {
			return nil, s, ErrWrongTurn
		}
		if s.Drafted(cmd.HeroID) {
			return nil, s, ErrDuplicateHero
		}

		newState := s.clone()
		newState.FirstPicker = first
		newState.Picks[cmd.Side] = append(newState.Picks[cmd.Side], cmd.HeroID)
		newState.Cursor++

		events := []Event{
			{Type: EvtHeroPicked, Side: cmd.Side, HeroID: cmd.HeroID},
			{Type: EvtTurnAdvanced},
		}
		if newState.Cursor == TotalPicks {
			events = append(events, Event{Type: EvtDraftCompleted})
		}
		return events, newState, nil

	case CmdSetPostBan:
		if s.Cursor < TotalPicks {
			return nil, s, ErrDraftNotCompleted
		}
		if _, ok := s.PostBans[cmd.Side]; ok {
			return nil, s, ErrPostBanTaken
		}
		// A post-ban removes one hero from the opposing team.
		if !slices.Contains(s.Picks[cmd.Side.Opponent()], cmd.HeroID) {
			return nil, s, ErrPostBanNotPicked
		}

		newState := s.clone()
		newState.PostBans[cmd.Side] = cmd.HeroID
		events := []Event{
			{Type: EvtPostBanSet, Side: cmd.Side, HeroID: cmd.HeroID},
		}
		return events, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// Reduce rebuilds a state from an event log.
func Reduce(events []Event) State {
	s := NewEmptyState()
	for _, event := range events {
		switch event.Type {
		case EvtPreBanSet:
			s.PreBans[event.Side] = append(s.PreBans[event.Side], event.HeroID)
		case EvtHeroPicked:
			if s.FirstPicker == "" {
				s.FirstPicker = event.Side
			}
			s.Picks[event.Side] = append(s.Picks[event.Side], event.HeroID)
		case EvtTurnAdvanced:
			s.Cursor++
		case EvtPostBanSet:
			s.PostBans[event.Side] = event.HeroID
		}
	}
	return s
}

// Drafted reports whether id already appears anywhere in the draft:
// pre-bans, picks, or post-bans of either side.
func (s State) Drafted(id string) bool {
	for _, side := range []Side{SideMe, SideEnemy} {
		if slices.Contains(s.PreBans[side], id) || slices.Contains(s.Picks[side], id) {
			return true
		}
		if s.PostBans[side] == id {
			return true
		}
	}
	return false
}

// Unavailable returns every hero the recommender must never suggest:
// both sides' pre-bans and picks.
func (s State) Unavailable() map[string]bool {
	out := make(map[string]bool, PreBanLimit*2+TotalPicks)
	for _, side := range []Side{SideMe, SideEnemy} {
		for _, id := range s.PreBans[side] {
			out[id] = true
		}
		for _, id := range s.Picks[side] {
			out[id] = true
		}
	}
	return out
}

// Completed reports whether all ten picks have been made.
func (s State) Completed() bool {
	return s.Cursor >= TotalPicks
}

func (s State) clone() State {
	c := s
	c.Picks = map[Side][]string{
		SideMe:    slices.Clone(s.Picks[SideMe]),
		SideEnemy: slices.Clone(s.Picks[SideEnemy]),
	}
	c.PreBans = map[Side][]string{
		SideMe:    slices.Clone(s.PreBans[SideMe]),
		SideEnemy: slices.Clone(s.PreBans[SideEnemy]),
	}
	c.PostBans = make(map[Side]string, len(s.PostBans))
	for side, id := range s.PostBans {
		c.PostBans[side] = id
	}
	return c
}
