// Package corpus loads the historical match dataset and builds the
// read-only statistics index every recommendation query runs against.
package corpus

import (
	"context"
	"errors"
)

var ErrDataUnavailable = errors.New("corpus data unavailable")

// Record is one historical RTA match as recorded from one player's
// perspective ("my" side). Pick slices are in draft order.
type Record struct {
	MyPreBans    []string
	EnemyPreBans []string
	MyPicks      []string
	EnemyPicks   []string
	MyPostBan    string
	EnemyPostBan string
	MyFirst      bool
	MyWin        bool
}

// Source yields the full set of historical records. Implementations
// are read-only; the index is built once at startup.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}
