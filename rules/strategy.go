package rules

import "fmt"

// Strategy identifies one of the named firing algorithms. The numbering
// matches the rule base's historical strategy ids, so configs written
// against the interpreter keep meaning the same thing.
type Strategy int

const (
	StrategyDirect       Strategy = 1 // fire when horizontally close to the player
	StrategyPredictive   Strategy = 2 // lead the player's tracked movement
	StrategyRandom       Strategy = 3 // chance gate only, no aiming
	StrategyTrap         Strategy = 4 // bottom row coordinates a three-point crossfire
	StrategyBarrierAvoid Strategy = 5 // direct, but hold fire into a barrier
)

var strategyNames = map[Strategy]string{
	StrategyDirect:       "direct",
	StrategyPredictive:   "predictive",
	StrategyRandom:       "random",
	StrategyTrap:         "trap",
	StrategyBarrierAvoid: "barrier_avoid",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy resolves a config name or numeric id to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	var id int
	if _, err := fmt.Sscanf(name, "%d", &id); err == nil && Strategy(id).Valid() {
		return Strategy(id), nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}
