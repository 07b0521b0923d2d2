package rules

import (
	"fmt"

	"github.com/swarmlogic/swarm-core/model"
)

// AssignmentMode selects how aliens are mapped to strategies. Exactly one
// mode is active at a time; switching is always an explicit call, never
// inferred from state.
type AssignmentMode int

const (
	ModeGlobal AssignmentMode = iota // one strategy for every alien
	ModePerRow                       // row band → strategy
)

// Assignment maps aliens to strategies, either globally or per row.
type Assignment struct {
	Mode   AssignmentMode
	Global Strategy
	Rows   map[int]Strategy
}

// GlobalAssignment assigns one strategy to every alien.
func GlobalAssignment(s Strategy) Assignment {
	return Assignment{Mode: ModeGlobal, Global: s}
}

// PerRowAssignment assigns strategies by row band. Rows missing from the
// map fail resolution with UnmappedRowError rather than defaulting.
func PerRowAssignment(rows map[int]Strategy) Assignment {
	m := make(map[int]Strategy, len(rows))
	for row, s := range rows {
		m[row] = s
	}
	return Assignment{Mode: ModePerRow, Rows: m}
}

// Validate rejects assignments that could never resolve.
func (a Assignment) Validate() error {
	switch a.Mode {
	case ModeGlobal:
		if !a.Global.Valid() {
			return fmt.Errorf("global assignment: %s is not a strategy", a.Global)
		}
	case ModePerRow:
		if len(a.Rows) == 0 {
			return fmt.Errorf("per-row assignment has no rows")
		}
		for row, s := range a.Rows {
			if !s.Valid() {
				return fmt.Errorf("row %d: %s is not a strategy", row, s)
			}
		}
	default:
		return fmt.Errorf("unknown assignment mode %d", a.Mode)
	}
	return nil
}

// UnmappedRowError reports an alien whose row band has no configured
// strategy. Surfaced, never silently defaulted.
type UnmappedRowError struct {
	Row int
}

func (e UnmappedRowError) Error() string {
	return fmt.Sprintf("no strategy mapped for row %d", e.Row)
}

// Resolve picks the strategy for one alien under the active assignment.
func (a Assignment) Resolve(alien model.Alien, classifier *RowClassifier) (Strategy, error) {
	if a.Mode == ModeGlobal {
		return a.Global, nil
	}
	row := classifier.RowOf(alien.Y)
	s, ok := a.Rows[row]
	if !ok {
		return 0, UnmappedRowError{Row: row}
	}
	return s, nil
}
