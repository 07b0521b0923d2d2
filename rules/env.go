package rules

import (
	"math"
	"math/rand/v2"

	"github.com/swarmlogic/swarm-core/model"
)

// Env wraps one alien's view of the tick and exposes the gates the fire
// predicates combine. The same Env value feeds both the expr-compiled
// rules and the built-in fallback, and both draw randomness through the
// same Rand, so the two evaluators stay interchangeable shot for shot.
type Env struct {
	Agent  model.Alien
	State  model.Snapshot
	Tuning Tuning

	// Direction and Primed are the tracker's state for this tick,
	// captured once before any alien is evaluated.
	Direction int
	Primed    bool

	Rand *rand.Rand
}

// Chance draws uniformly in [0,100) and succeeds below the threshold.
func (e Env) Chance(percent float64) bool {
	return e.Rand.Float64()*100 < percent
}

// NearPlayer is the direct strategy's geometric gate.
func (e Env) NearPlayer() bool {
	return math.Abs(e.Agent.X-e.State.Player.X) < e.Tuning.ProximityMargin
}

// PredictedX extrapolates the player's x one lead ahead of their tracked
// movement, clamped inside the screen.
func (e Env) PredictedX() float64 {
	return predictedX(e.State.Player.X, e.Direction, e.Tuning, e.State.Bounds)
}

// HasHistory reports whether the tracker has seen a prior player
// position. Prediction without history would just be a guess, so the
// predictive strategy holds fire on the first tick.
func (e Env) HasHistory() bool {
	return e.Primed
}

// NearPredicted is the predictive strategy's geometric gate.
func (e Env) NearPredicted() bool {
	return math.Abs(e.Agent.X-e.PredictedX()) < e.Tuning.PredictMargin
}

// BottomMost reports whether no other live alien sits strictly below
// this one. Aliens sharing the bottom row all qualify.
func (e Env) BottomMost() bool {
	for _, other := range e.State.Aliens {
		if other.ID != e.Agent.ID && other.Y > e.Agent.Y {
			return false
		}
	}
	return true
}

// TrapTargetX assigns this alien the nearest of the three crossfire
// points: the player's position and one offset to each side. The offset
// widens on the side the player is moving toward and narrows behind
// them, pinching the escape route.
func (e Env) TrapTargetX() float64 {
	t := e.Tuning
	leftOffset := t.TrapBaseOffset
	rightOffset := t.TrapBaseOffset
	switch e.Direction {
	case -1:
		leftOffset += t.TrapDirectionBias
		rightOffset -= t.TrapDirectionBias
	case 1:
		leftOffset -= t.TrapDirectionBias
		rightOffset += t.TrapDirectionBias
	}

	center := e.State.Player.X
	left := clampX(center-leftOffset, 0, e.State.Bounds.Width)
	right := clampX(center+rightOffset, 0, e.State.Bounds.Width)

	best := center
	bestDist := math.Abs(e.Agent.X - center)
	for _, candidate := range []float64{left, right} {
		if d := math.Abs(e.Agent.X - candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// NearTrapTarget is the trap strategy's geometric gate.
func (e Env) NearTrapTarget() bool {
	return math.Abs(e.Agent.X-e.TrapTargetX()) < e.Tuning.TrapMargin
}

// InTimingSlot staggers trap firing: an alien only shoots when an
// independent draw in {0,1,2} lands on its id mod 3 slot, so the three
// crossfire points don't all fire at once.
func (e Env) InTimingSlot() bool {
	return e.Rand.IntN(3) == e.Agent.ID%3
}

// LineOfFireClear reports whether no barrier sits below this alien close
// enough in x to absorb the shot.
func (e Env) LineOfFireClear() bool {
	for _, b := range e.State.Barriers {
		if b.Y > e.Agent.Y && math.Abs(b.X-e.Agent.X) < e.Tuning.BarrierBlockMargin {
			return false
		}
	}
	return true
}
