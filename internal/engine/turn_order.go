package engine

// The two fixed ten-slot pick orders. Which one applies is decided by
// whoever makes the very first pick.
var enemyFirstOrder = []Side{
	SideEnemy,
	SideMe, SideMe,
	SideEnemy, SideEnemy,
	SideMe, SideMe,
	SideEnemy, SideEnemy,
	SideMe,
}

var meFirstOrder = []Side{
	SideMe,
	SideEnemy, SideEnemy,
	SideMe, SideMe,
	SideEnemy, SideEnemy,
	SideMe, SideMe,
	SideEnemy,
}

// Order returns the pick order for the given first picker.
func Order(first Side) []Side {
	if first == SideMe {
		return meFirstOrder
	}
	return enemyFirstOrder
}

// UpcomingOwnSlots returns how many consecutive picks belong to me
// starting at the current cursor: 1 or 2 when it is my turn, 0 when it
// is the enemy's turn or the draft is complete. Before the first pick
// the order is still open, so a single first-pick suggestion applies.
func UpcomingOwnSlots(s State) int {
	if s.Cursor >= TotalPicks {
		return 0
	}
	if s.FirstPicker == "" {
		return 1
	}
	order := Order(s.FirstPicker)
	n := 0
	for i := s.Cursor; i < TotalPicks && order[i] == SideMe; i++ {
		n++
	}
	return n
}
