package rules

import "github.com/swarmlogic/swarm-core/model"

// Tracker holds the one piece of state that survives across ticks: the
// player's last observed x and the most recently detected movement
// direction. There is exactly one tracker per engine — it follows the
// player, not any individual alien.
type Tracker struct {
	lastX        float64
	observations int
	direction    int // -1, 0, +1
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records the player's x for this tick. Called exactly once per
// tick, before any alien is evaluated, so every predictive alien in the
// tick sees the same direction estimate.
//
// A zero delta retains the previously detected direction; standing still
// never erases movement history.
func (t *Tracker) Observe(x float64) {
	t.observations++
	if t.observations == 1 {
		t.lastX = x
		return
	}
	switch delta := x - t.lastX; {
	case delta > 0:
		t.direction = 1
	case delta < 0:
		t.direction = -1
	}
	t.lastX = x
}

// Primed reports whether a player position from an earlier tick is on
// record. The observation for the tick currently being evaluated is not
// history by itself, so the predictive strategy holds fire until the
// second tick.
func (t *Tracker) Primed() bool {
	return t.observations >= 2
}

// Direction returns the stored movement direction: -1, 0 or +1.
func (t *Tracker) Direction() int {
	return t.direction
}

// Reset clears all history. Only called at session restart.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// predictedX extrapolates the player's position one lead ahead of their
// tracked direction. With no detected direction it aims past the far
// side of screen center from where the player currently stands, so early
// shots still lead somewhere plausible instead of firing straight down.
func predictedX(playerX float64, direction int, tuning Tuning, bounds model.Bounds) float64 {
	var x float64
	switch {
	case direction != 0:
		x = playerX + float64(direction)*tuning.LeadDistance
	case playerX < bounds.Width/2:
		x = playerX + tuning.LeadDistance
	default:
		x = playerX - tuning.LeadDistance
	}
	return clampX(x, tuning.ClampMargin, bounds.Width-tuning.ClampMargin)
}

func clampX(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
