package quiz

import (
	"math"
	"testing"
)

func TestUpdateThreshold(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		score   int
		want    float64
	}{
		{"full credit tightens", 4.0, 2, 3.85},
		{"no credit loosens", 4.0, 0, 4.15},
		{"partial credit is a no-op", 4.0, 1, 4.0},
		{"floor holds", 0.5, 2, 0.5},
		{"floor not overshot", 0.6, 2, 0.5},
		{"ceiling holds", 7.0, 0, 7.0},
		{"ceiling not overshot", 6.9, 0, 7.0},
	}

	for _, tt := range tests {
		got := UpdateThreshold(tt.current, tt.score)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: UpdateThreshold(%v, %d) = %v, want %v",
				tt.name, tt.current, tt.score, got, tt.want)
		}
	}
}

func TestUpdateThresholdStaysInRange(t *testing.T) {
	// Hammering one direction converges on the bound and stays there
	th := 4.0
	for i := 0; i < 100; i++ {
		th = UpdateThreshold(th, 2)
	}
	if th != 0.5 {
		t.Errorf("threshold after repeated full credit = %v, want 0.5", th)
	}

	for i := 0; i < 100; i++ {
		th = UpdateThreshold(th, 0)
	}
	if th != 7.0 {
		t.Errorf("threshold after repeated no credit = %v, want 7.0", th)
	}
}
