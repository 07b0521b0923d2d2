package rules

import (
	"testing"

	"github.com/swarmlogic/swarm-core/model"
)

func TestTrackerFirstObservation(t *testing.T) {
	tr := NewTracker()
	if tr.Primed() {
		t.Fatal("fresh tracker should not be primed")
	}

	// The first observation belongs to the tick being evaluated; it is
	// not history yet, so the tracker stays unprimed until a second one.
	tr.Observe(100)
	if tr.Primed() {
		t.Error("tracker primed after a single observation")
	}
	if tr.Direction() != 0 {
		t.Errorf("direction after first observation = %d, want 0", tr.Direction())
	}

	tr.Observe(100)
	if !tr.Primed() {
		t.Error("tracker should be primed once a prior position is on record")
	}
}

func TestTrackerDirectionDetection(t *testing.T) {
	tr := NewTracker()
	tr.Observe(100)
	tr.Observe(120)
	if tr.Direction() != 1 {
		t.Errorf("direction after rightward move = %d, want 1", tr.Direction())
	}

	tr.Observe(90)
	if tr.Direction() != -1 {
		t.Errorf("direction after leftward move = %d, want -1", tr.Direction())
	}
}

func TestTrackerZeroDeltaRetainsDirection(t *testing.T) {
	// Player moves 100 → 120 → 120: the zero delta on the third tick
	// must keep the +1 detected on the second, not reset to 0.
	tr := NewTracker()
	tr.Observe(100)
	tr.Observe(120)
	tr.Observe(120)
	if tr.Direction() != 1 {
		t.Errorf("direction after standstill = %d, want 1 retained", tr.Direction())
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.Observe(100)
	tr.Observe(120)
	tr.Reset()
	if tr.Primed() || tr.Direction() != 0 {
		t.Errorf("after reset: primed=%v direction=%d, want unprimed 0", tr.Primed(), tr.Direction())
	}
}

func TestPredictedX(t *testing.T) {
	tuning := DefaultTuning() // LeadDistance 50, ClampMargin 20
	bounds := model.Bounds{Width: 800, Height: 600}

	cases := []struct {
		name      string
		playerX   float64
		direction int
		want      float64
	}{
		{"leads right", 400, 1, 450},
		{"leads left", 400, -1, 350},
		{"no direction, left of center aims right", 200, 0, 250},
		{"no direction, right of center aims left", 600, 0, 550},
		{"clamped at left edge", 10, -1, 20},
		{"clamped at right edge", 790, 1, 780},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := predictedX(tc.playerX, tc.direction, tuning, bounds)
			if got != tc.want {
				t.Errorf("predictedX(%g, %d) = %g, want %g", tc.playerX, tc.direction, got, tc.want)
			}
		})
	}
}
