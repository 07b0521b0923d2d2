package rules

import (
	"fmt"
	"sort"
)

// RowClassifier partitions the vertical axis into bands. Band i covers
// y <= thresholds[i] (after the previous threshold); everything past the
// last threshold lands in the final band. Rows are 1-based to match the
// rule interpreter's row numbering.
type RowClassifier struct {
	thresholds []float64
}

// NewRowClassifier builds a classifier from ascending y cutoffs. The
// thresholds come from configuration so level layouts can change the
// banding without code changes.
func NewRowClassifier(thresholds []float64) (*RowClassifier, error) {
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("row classifier needs at least one threshold")
	}
	ts := make([]float64, len(thresholds))
	copy(ts, thresholds)
	if !sort.Float64sAreSorted(ts) {
		return nil, fmt.Errorf("row thresholds must be ascending: %v", thresholds)
	}
	return &RowClassifier{thresholds: ts}, nil
}

// RowOf maps a y coordinate to its row band. Total: every y maps to
// exactly one row, and the row index never decreases as y grows.
func (c *RowClassifier) RowOf(y float64) int {
	for i, t := range c.thresholds {
		if y <= t {
			return i + 1
		}
	}
	return len(c.thresholds) + 1
}

// Rows returns the number of bands the classifier produces.
func (c *RowClassifier) Rows() int {
	return len(c.thresholds) + 1
}
