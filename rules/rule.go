package rules

import "fmt"

// fireRule is the atomic unit of firing behavior: the named predicate the
// engine asks about, with its condition kept as expr source.
//
// Each predicate combines a deterministic geometric gate with a stochastic
// gate, short-circuited left to right. The fallback evaluator re-implements
// the same conditions in the same order, which keeps random draws aligned
// between the two backends.
type fireRule struct {
	Strategy     Strategy
	Predicate    string // query name, e.g. "should_fire_direct"
	ConditionSrc string // expr source
}

// fireRules is the complete rule base, one predicate per strategy.
func fireRules() []*fireRule {
	return []*fireRule{
		{
			Strategy:     StrategyDirect,
			Predicate:    "should_fire_direct",
			ConditionSrc: `NearPlayer() && Chance(Tuning.ProbDirect)`,
		},
		{
			Strategy:     StrategyPredictive,
			Predicate:    "should_fire_predictive",
			ConditionSrc: `HasHistory() && NearPredicted() && Chance(Tuning.ProbPredict)`,
		},
		{
			Strategy:     StrategyRandom,
			Predicate:    "should_fire_random",
			ConditionSrc: `Chance(Tuning.ProbRandom)`,
		},
		{
			Strategy:     StrategyTrap,
			Predicate:    "should_fire_trap",
			ConditionSrc: `BottomMost() && NearTrapTarget() && InTimingSlot() && Chance(Tuning.ProbTrap)`,
		},
		{
			Strategy:     StrategyBarrierAvoid,
			Predicate:    "should_fire_barrier_avoid",
			ConditionSrc: `NearPlayer() && LineOfFireClear() && Chance(Tuning.ProbBarrier)`,
		},
	}
}

// firePredicate names the query the engine issues for a strategy.
func firePredicate(s Strategy) (string, error) {
	for _, r := range fireRules() {
		if r.Strategy == s {
			return r.Predicate, nil
		}
	}
	return "", fmt.Errorf("no fire predicate for %s", s)
}
