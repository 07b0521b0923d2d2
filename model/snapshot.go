package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot marks snapshots that fail validation. The engine
// rejects the whole tick before evaluating any alien.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the complete game state for one tick, as pushed by the game
// process. It is immutable: the engine never writes back into it.
type Snapshot struct {
	Tick     int       `json:"tick"`
	Player   Player    `json:"player"`
	Aliens   []Alien   `json:"aliens"`
	Barriers []Barrier `json:"barriers"`
	Bounds   Bounds    `json:"bounds"`
}

type Player struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Alien is one live invader. Destroyed aliens simply stop appearing in
// snapshots; there is no soft-delete flag.
type Alien struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Barrier is a static obstacle. Only its position matters to the rules
// (line-of-fire checks); damage state stays on the game side.
type Barrier struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate rejects snapshots the engine must not act on: duplicate or
// negative alien IDs and degenerate screen bounds.
func (s Snapshot) Validate() error {
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return fmt.Errorf("%w: bounds %gx%g", ErrInvalidSnapshot, s.Bounds.Width, s.Bounds.Height)
	}
	seen := make(map[int]bool, len(s.Aliens))
	for _, a := range s.Aliens {
		if a.ID < 0 {
			return fmt.Errorf("%w: negative alien id %d", ErrInvalidSnapshot, a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate alien id %d", ErrInvalidSnapshot, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}
