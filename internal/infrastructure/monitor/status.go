package monitor

import "time"

type Status struct {
	PostgreSQL    bool      `json:"postgresql"`
	Redis         bool      `json:"redis"`
	StateStore    bool      `json:"state_store"`
	PendingStates int       `json:"pending_states"`
	LastCheck     time.Time `json:"last_check"`
}
