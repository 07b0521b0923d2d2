package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/swarmlogic/swarm-core/model"
)

// Engine runs the fire predicates against the current snapshot each tick
// and emits exactly one action per alien. Aliens are evaluated in
// ascending id order, so a fixed seed reproduces a whole session despite
// the stochastic gates.
type Engine struct {
	mu         sync.Mutex
	primary    Evaluator
	fallback   Evaluator
	classifier *RowClassifier
	assignment Assignment
	tracker    *Tracker
	tuning     Tuning
	rng        *rand.Rand
	cooldowns  map[int]int // alien id → ticks until it may fire again
}

// NewEngine builds an engine with the expr rule base as primary backend
// and the built-in predicates as fallback. The default assignment maps
// each row band to the strategy with the same number, the rule base's
// historical row layout.
func NewEngine(tuning Tuning) (*Engine, error) {
	tuning.Validate()

	classifier, err := NewRowClassifier(tuning.RowThresholds)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	primary, err := NewExprEvaluator()
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	seed := tuning.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Engine{
		primary:    primary,
		fallback:   NewFallbackEvaluator(),
		classifier: classifier,
		assignment: defaultAssignment(classifier),
		tracker:    NewTracker(),
		tuning:     tuning,
		rng:        rand.New(rand.NewPCG(seed, seed)),
		cooldowns:  make(map[int]int),
	}, nil
}

// defaultAssignment is the rule base's historical row layout: each row
// band runs the strategy with the same number, capped at the strategy
// count for deeper bandings.
func defaultAssignment(classifier *RowClassifier) Assignment {
	rows := make(map[int]Strategy, classifier.Rows())
	for row := 1; row <= classifier.Rows(); row++ {
		s := Strategy(row)
		if !s.Valid() {
			s = StrategyBarrierAvoid
		}
		rows[row] = s
	}
	return PerRowAssignment(rows)
}

// ResetAssignment returns to the default row-based mapping.
func (e *Engine) ResetAssignment() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assignment = defaultAssignment(e.classifier)
	slog.Info("assignment reset to row-based default")
}

// SetPrimary swaps the primary rule backend. Used to point the engine at
// a remote interpreter; the fallback stays in place either way.
func (e *Engine) SetPrimary(ev Evaluator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.primary = ev
}

// SetAssignment switches the strategy mapping. Explicit and idempotent:
// setting the same assignment twice changes nothing.
func (e *Engine) SetAssignment(a Assignment) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("set assignment: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assignment = a
	slog.Info("assignment set", "mode", a.Mode, "global", a.Global, "rows", len(a.Rows))
	return nil
}

// Reset clears all cross-tick state (direction history and cooldowns).
// Called at session restart.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Reset()
	e.cooldowns = make(map[int]int)
}

// EvaluateTick decides one action for every alien in the snapshot.
// The tick is all-or-nothing: an invalid snapshot or an unmapped row
// yields an error and no actions.
func (e *Engine) EvaluateTick(ctx context.Context, snap model.Snapshot) (map[int]model.Action, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// One tracker update per tick, before any alien is evaluated, so
	// every predictive alien sees the same direction estimate.
	e.tracker.Observe(snap.Player.X)

	aliens := make([]model.Alien, len(snap.Aliens))
	copy(aliens, snap.Aliens)
	sort.Slice(aliens, func(i, j int) bool { return aliens[i].ID < aliens[j].ID })

	e.pruneCooldowns(aliens)

	actions := make(map[int]model.Action, len(aliens))
	for _, alien := range aliens {
		action, err := e.decide(ctx, alien, snap)
		if err != nil {
			return nil, fmt.Errorf("tick %d alien %d: %w", snap.Tick, alien.ID, err)
		}
		actions[alien.ID] = action
	}
	return actions, nil
}

// decide resolves one alien's strategy and runs its fire predicate, then
// movement. Fire strictly precedes movement: an alien that qualifies to
// fire never also moves in the same tick.
func (e *Engine) decide(ctx context.Context, alien model.Alien, snap model.Snapshot) (model.Action, error) {
	strategy, err := e.assignment.Resolve(alien, e.classifier)
	if err != nil {
		return "", err
	}

	if e.cooldowns[alien.ID] > 0 {
		e.cooldowns[alien.ID]--
	} else {
		fire, err := e.askFire(ctx, strategy, alien, snap)
		if err != nil {
			return "", err
		}
		if fire {
			e.cooldowns[alien.ID] = e.tuning.CooldownTicks
			slog.Debug("alien fires", "alien", alien.ID, "strategy", strategy.String())
			return model.ActionFire, nil
		}
	}

	return e.move(alien, snap.Bounds), nil
}

// askFire queries the primary backend under the configured timeout and
// retries the identical query against the fallback when the primary is
// unavailable. The fallback shares the Env and random source, so the
// caller sees the same action distribution either way.
func (e *Engine) askFire(ctx context.Context, strategy Strategy, alien model.Alien, snap model.Snapshot) (bool, error) {
	predicate, err := firePredicate(strategy)
	if err != nil {
		return false, err
	}

	env := Env{
		Agent:     alien,
		State:     snap,
		Tuning:    e.tuning,
		Direction: e.tracker.Direction(),
		Primed:    e.tracker.Primed(),
		Rand:      e.rng,
	}

	askCtx, cancel := context.WithTimeout(ctx, e.tuning.EvaluatorTimeout)
	defer cancel()

	fire, err := e.primary.Ask(askCtx, predicate, env)
	if errors.Is(err, ErrUnavailable) {
		slog.Warn("primary evaluator unavailable, using fallback", "predicate", predicate, "error", err)
		return e.fallback.Ask(ctx, predicate, env)
	}
	if err != nil {
		return false, err
	}
	return fire, nil
}

// move picks a drift direction inside the configured bounds. When both
// directions are open the choice is a seeded coin flip; when neither is,
// the alien just holds position — never an error.
func (e *Engine) move(alien model.Alien, bounds model.Bounds) model.Action {
	canLeft := alien.X > e.tuning.MoveLeftBound
	canRight := alien.X < bounds.Width-e.tuning.MoveRightBound
	switch {
	case canLeft && canRight:
		if e.rng.IntN(2) == 0 {
			return model.ActionMoveLeft
		}
		return model.ActionMoveRight
	case canLeft:
		return model.ActionMoveLeft
	case canRight:
		return model.ActionMoveRight
	default:
		return model.ActionIdle
	}
}

// pruneCooldowns drops cooldown entries for aliens no longer in the
// snapshot, keeping the map from growing across waves.
func (e *Engine) pruneCooldowns(aliens []model.Alien) {
	alive := make(map[int]bool, len(aliens))
	for _, a := range aliens {
		alive[a.ID] = true
	}
	for id := range e.cooldowns {
		if !alive[id] {
			delete(e.cooldowns, id)
		}
	}
}
