package types

import "github.com/kwhitford/e7-draft-backend/internal/engine"

type ClientMessage struct {
	Type   string `json:"type"` // "SetPreBan" | "LockPick" | "SetPostBan"
	Side   string `json:"side,omitempty"`
	HeroID string `json:"hero_id,omitempty"`
}

type ServerMessage struct {
	Type           string        `json:"type"` // "StateSnapshot" | "Error"
	Version        int           `json:"version,omitempty"`
	State          *engine.State `json:"state,omitempty"`
	Recommended    []string      `json:"recommended,omitempty"`
	WinProbability *float64      `json:"win_probability,omitempty"`
	Error          string        `json:"error,omitempty"`
}
