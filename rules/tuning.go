package rules

import "time"

// Tuning carries every externally adjustable knob of the decision engine.
// Difficulty tuning happens entirely here — no strategy constant is
// hard-coded in the predicates.
type Tuning struct {
	// Row banding (ascending y cutoffs).
	RowThresholds []float64 `yaml:"row_thresholds"`

	// Geometric gates.
	ProximityMargin    float64 `yaml:"proximity_margin"`     // direct: |alien.x - player.x|
	PredictMargin      float64 `yaml:"predict_margin"`       // predictive: |alien.x - predicted x|
	TrapMargin         float64 `yaml:"trap_margin"`          // trap: |alien.x - assigned target|
	BarrierBlockMargin float64 `yaml:"barrier_block_margin"` // barrier-avoid: blocking barrier width

	// Prediction.
	LeadDistance float64 `yaml:"lead_distance"` // how far ahead of movement to aim
	ClampMargin  float64 `yaml:"clamp_margin"`  // keep predictions inside the screen

	// Trap targeting.
	TrapBaseOffset    float64 `yaml:"trap_base_offset"`
	TrapDirectionBias float64 `yaml:"trap_direction_bias"`

	// Stochastic gates, percent chance in [0,100].
	ProbDirect  float64 `yaml:"prob_direct"`
	ProbPredict float64 `yaml:"prob_predict"`
	ProbRandom  float64 `yaml:"prob_random"`
	ProbTrap    float64 `yaml:"prob_trap"`
	ProbBarrier float64 `yaml:"prob_barrier"`

	// Movement bounds: how close to the screen edges aliens may drift.
	MoveLeftBound  float64 `yaml:"move_left_bound"`
	MoveRightBound float64 `yaml:"move_right_bound"`

	// Ticks an alien must wait between shots. Zero disables the cooldown.
	CooldownTicks int `yaml:"cooldown_ticks"`

	// Budget for one primary-evaluator query before the engine falls
	// back to the built-in predicates for that alien. Set from config
	// as milliseconds (see the config package).
	EvaluatorTimeout time.Duration `yaml:"-"`

	// Seed for the injected random source. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// DefaultTuning returns the baseline difficulty: three rows, classic
// 800x600 geometry.
func DefaultTuning() Tuning {
	return Tuning{
		RowThresholds:      []float64{150, 250},
		ProximityMargin:    20,
		PredictMargin:      30,
		TrapMargin:         25,
		BarrierBlockMargin: 40,
		LeadDistance:       50,
		ClampMargin:        20,
		TrapBaseOffset:     60,
		TrapDirectionBias:  20,
		ProbDirect:         70,
		ProbPredict:        60,
		ProbRandom:         10,
		ProbTrap:           80,
		ProbBarrier:        65,
		MoveLeftBound:      10,
		MoveRightBound:     10,
		CooldownTicks:      30,
		EvaluatorTimeout:   50 * time.Millisecond,
	}
}

// Validate clamps every knob to its sane range so a bad config file
// degrades instead of producing negative margins or >100% chances.
func (t *Tuning) Validate() {
	if len(t.RowThresholds) == 0 {
		t.RowThresholds = DefaultTuning().RowThresholds
	}
	t.ProximityMargin = clampF(t.ProximityMargin, 0, 1000)
	t.PredictMargin = clampF(t.PredictMargin, 0, 1000)
	t.TrapMargin = clampF(t.TrapMargin, 0, 1000)
	t.BarrierBlockMargin = clampF(t.BarrierBlockMargin, 0, 1000)
	t.LeadDistance = clampF(t.LeadDistance, 0, 1000)
	t.ClampMargin = clampF(t.ClampMargin, 0, 500)
	t.TrapBaseOffset = clampF(t.TrapBaseOffset, 0, 1000)
	t.TrapDirectionBias = clampF(t.TrapDirectionBias, 0, t.TrapBaseOffset)
	t.ProbDirect = clampF(t.ProbDirect, 0, 100)
	t.ProbPredict = clampF(t.ProbPredict, 0, 100)
	t.ProbRandom = clampF(t.ProbRandom, 0, 100)
	t.ProbTrap = clampF(t.ProbTrap, 0, 100)
	t.ProbBarrier = clampF(t.ProbBarrier, 0, 100)
	t.MoveLeftBound = clampF(t.MoveLeftBound, 0, 1000)
	t.MoveRightBound = clampF(t.MoveRightBound, 0, 1000)
	if t.CooldownTicks < 0 {
		t.CooldownTicks = 0
	}
	if t.EvaluatorTimeout <= 0 {
		t.EvaluatorTimeout = DefaultTuning().EvaluatorTimeout
	}
}

// clampF restricts v to [min, max].
func clampF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
