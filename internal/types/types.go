package types

import "github.com/DoyleJ11/portal-race/internal/engine"

type ClientMessage struct {
	Type    string `json:"type"` // "input" | "restart"
	Team    string `json:"team,omitempty"`
	Command string `json:"command,omitempty"`
}

type ServerMessage struct {
	Type    string           `json:"type"` // "StateSnapshot" | "Error"
	Version int              `json:"version,omitempty"`
	State   *engine.Snapshot `json:"state,omitempty"`
	Events  []engine.Event   `json:"events,omitempty"`
	Error   string           `json:"error,omitempty"`
}
