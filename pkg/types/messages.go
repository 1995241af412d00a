// Package types holds the REST request/response shapes shared with
// clients of the stateless draft endpoints.
package types

// DraftRequest carries an in-progress draft as collected lists.
// FirstPicker is required once any pick has been made ("me"/"enemy").
type DraftRequest struct {
	FirstPicker  string   `json:"first_picker,omitempty"`
	MyPreBans    []string `json:"my_pre_bans"`
	EnemyPreBans []string `json:"enemy_pre_bans"`
	MyPicks      []string `json:"my_picks"`
	EnemyPicks   []string `json:"enemy_picks"`
	// Slots overrides how many suggestions to return; 0 derives it
	// from the draft order.
	Slots int `json:"slots,omitempty"`
}

type RecommendResponse struct {
	Recommended []string `json:"recommended"`
}

// WinProbRequest is a completed draft, post-bans included.
type WinProbRequest struct {
	DraftRequest
	MyPostBan    string `json:"my_post_ban,omitempty"`
	EnemyPostBan string `json:"enemy_post_ban,omitempty"`
}

type WinProbResponse struct {
	WinProbability float64 `json:"win_probability"`
}

type CreateSessionResponse struct {
	Code string `json:"code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
