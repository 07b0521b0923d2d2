package model

// Action is the single decision emitted for one alien in one tick.
// The wire atoms match the rule interpreter's historical action terms.
type Action string

const (
	ActionFire      Action = "fire"
	ActionMoveLeft  Action = "left"
	ActionMoveRight Action = "right"
	ActionIdle      Action = "stay"
)
