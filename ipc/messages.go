package ipc

import "github.com/swarmlogic/swarm-core/model"

// Message types shared with the game process.
const (
	TypeHello       = "hello"
	TypeAck         = "ack"
	TypeSnapshot    = "snapshot"
	TypeActions     = "actions"
	TypeSetStrategy = "set_strategy"
	TypeError       = "error"
)

type HelloMessage struct {
	Game string `json:"game"`
}

type AckMessage struct {
	Status  string `json:"status"`
	Session string `json:"session,omitempty"`
}

// ActionsMessage carries one decision per alien id for one tick.
type ActionsMessage struct {
	Tick    int                  `json:"tick"`
	Actions map[int]model.Action `json:"actions"`
}

// SetStrategyMessage switches the assignment mode. A nil Strategy with
// no Rows means "strategy off": reset to the engine's default row-based
// mapping.
type SetStrategyMessage struct {
	Strategy *int        `json:"strategy,omitempty"` // global strategy id
	Rows     map[int]int `json:"rows,omitempty"`     // row → strategy id
}

type ErrorMessage struct {
	Error string `json:"error"`
}
