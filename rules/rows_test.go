package rules

import "testing"

func TestRowOfBands(t *testing.T) {
	c, err := NewRowClassifier([]float64{150, 250})
	if err != nil {
		t.Fatalf("NewRowClassifier: %v", err)
	}

	cases := []struct {
		y    float64
		want int
	}{
		{-50, 1},
		{0, 1},
		{150, 1}, // boundary belongs to the lower band
		{150.5, 2},
		{250, 2},
		{250.5, 3},
		{600, 3},
	}
	for _, tc := range cases {
		if got := c.RowOf(tc.y); got != tc.want {
			t.Errorf("RowOf(%g) = %d, want %d", tc.y, got, tc.want)
		}
	}
}

func TestRowOfTotalAndMonotonic(t *testing.T) {
	c, err := NewRowClassifier([]float64{150, 250})
	if err != nil {
		t.Fatalf("NewRowClassifier: %v", err)
	}

	prev := 0
	for y := -100.0; y <= 700; y += 0.5 {
		row := c.RowOf(y)
		if row < 1 || row > c.Rows() {
			t.Fatalf("RowOf(%g) = %d, outside [1,%d]", y, row, c.Rows())
		}
		if row < prev {
			t.Fatalf("RowOf(%g) = %d decreased from %d", y, row, prev)
		}
		prev = row
	}
}

func TestNewRowClassifierRejectsBadThresholds(t *testing.T) {
	if _, err := NewRowClassifier(nil); err == nil {
		t.Error("expected error for empty thresholds")
	}
	if _, err := NewRowClassifier([]float64{250, 150}); err == nil {
		t.Error("expected error for descending thresholds")
	}
}
