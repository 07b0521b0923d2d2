package rules

import (
	"context"
	"fmt"
)

// FallbackEvaluator answers the same predicates as the expr rule base
// with plain Go. Conditions mirror the rule sources gate for gate, in
// the same short-circuit order, so for equal inputs and an equal random
// stream the two backends return the same answer.
type FallbackEvaluator struct{}

func NewFallbackEvaluator() *FallbackEvaluator {
	return &FallbackEvaluator{}
}

func (f *FallbackEvaluator) Ask(_ context.Context, predicate string, env Env) (bool, error) {
	switch predicate {
	case "should_fire_direct":
		return env.NearPlayer() && env.Chance(env.Tuning.ProbDirect), nil
	case "should_fire_predictive":
		return env.HasHistory() && env.NearPredicted() && env.Chance(env.Tuning.ProbPredict), nil
	case "should_fire_random":
		return env.Chance(env.Tuning.ProbRandom), nil
	case "should_fire_trap":
		return env.BottomMost() && env.NearTrapTarget() && env.InTimingSlot() && env.Chance(env.Tuning.ProbTrap), nil
	case "should_fire_barrier_avoid":
		return env.NearPlayer() && env.LineOfFireClear() && env.Chance(env.Tuning.ProbBarrier), nil
	default:
		return false, fmt.Errorf("unknown predicate %q", predicate)
	}
}
