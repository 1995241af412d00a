package engine

import "slices"

func NewEmptyState() State {
	return State{
		Picks:    map[Side][]string{SideMe: {}, SideEnemy: {}},
		PreBans:  map[Side][]string{SideMe: {}, SideEnemy: {}},
		PostBans: map[Side]string{},
		Cursor:   0,
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// StateFromLists builds a State from already-collected draft lists, for
// the stateless query API. The lists must be a legal prefix of the draft:
// no duplicates, pre-ban limits respected, and pick counts consistent
// with the order implied by first.
func StateFromLists(first Side, myPreBans, enemyPreBans, myPicks, enemyPicks []string) (State, error) {
	if len(myPreBans) > PreBanLimit || len(enemyPreBans) > PreBanLimit {
		return State{}, ErrPreBanLimit
	}

	cursor := len(myPicks) + len(enemyPicks)
	if cursor > TotalPicks {
		return State{}, ErrDraftCompleted
	}
	if cursor > 0 {
		if first != SideMe && first != SideEnemy {
			return State{}, ErrWrongTurn
		}
		// The counts must match the order prefix at this cursor.
		mine := 0
		for _, side := range Order(first)[:cursor] {
			if side == SideMe {
				mine++
			}
		}
		if mine != len(myPicks) {
			return State{}, ErrWrongTurn
		}
	}

	seen := map[string]bool{}
	for _, group := range [][]string{myPreBans, enemyPreBans, myPicks, enemyPicks} {
		for _, id := range group {
			if seen[id] {
				return State{}, ErrDuplicateHero
			}
			seen[id] = true
		}
	}

	s := NewEmptyState()
	if cursor > 0 {
		s.FirstPicker = first
	}
	s.Cursor = cursor
	s.PreBans[SideMe] = slices.Clone(myPreBans)
	s.PreBans[SideEnemy] = slices.Clone(enemyPreBans)
	s.Picks[SideMe] = slices.Clone(myPicks)
	s.Picks[SideEnemy] = slices.Clone(enemyPicks)
	return s, nil
}
