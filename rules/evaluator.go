package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

//go:generate go tool mockgen -destination=./mocks/evaluator_mock.go -package=mocks . Evaluator

// ErrUnavailable reports that an evaluator could not answer a query this
// tick. The engine recovers by retrying the same query against the
// fallback; the condition is transient and never reaches the caller.
var ErrUnavailable = errors.New("evaluator unavailable")

// Evaluator answers fire-predicate queries. This is the only contract
// the engine requires from a rule backend — the expr rule base and the
// built-in fallback are both implementations of it.
type Evaluator interface {
	Ask(ctx context.Context, predicate string, env Env) (bool, error)
}

// ExprEvaluator is the primary backend: the rule base compiled to expr
// bytecode, evaluated against the per-alien Env.
type ExprEvaluator struct {
	programs map[string]*vm.Program
}

// NewExprEvaluator compiles every rule condition. A condition that fails
// to compile is a programming error, surfaced at construction rather
// than mid-game.
func NewExprEvaluator() (*ExprEvaluator, error) {
	programs := make(map[string]*vm.Program)
	for _, r := range fireRules() {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", r.Predicate, err)
		}
		programs[r.Predicate] = prog
	}
	return &ExprEvaluator{programs: programs}, nil
}

// Ask runs one compiled predicate. A missed deadline or a runtime fault
// in the bytecode both report ErrUnavailable so the engine can fall back
// for this tick only.
func (e *ExprEvaluator) Ask(ctx context.Context, predicate string, env Env) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	prog, ok := e.programs[predicate]
	if !ok {
		return false, fmt.Errorf("unknown predicate %q", predicate)
	}
	result, err := vm.Run(prog, env)
	if err != nil {
		return false, fmt.Errorf("%w: run %s: %w", ErrUnavailable, predicate, err)
	}
	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s returned %T", ErrUnavailable, predicate, result)
	}
	return match, nil
}
