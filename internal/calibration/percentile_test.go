package calibration

import (
	"math"
	"testing"
)

func TestThresholdToPercentileAnchors(t *testing.T) {
	tests := []struct {
		threshold float64
		want      float64
	}{
		{5.0, 0.5},
		{4.0, 1},
		{3.05, 5},
		{2.69, 50},
		{2.52, 95},
		{1.5, 99.5},
	}

	for _, tt := range tests {
		got := ThresholdToPercentile(tt.threshold)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ThresholdToPercentile(%v) = %v, want %v", tt.threshold, got, tt.want)
		}
	}
}

func TestThresholdToPercentileInterpolation(t *testing.T) {
	// Midpoint between the (2.87, 25) and (2.69, 50) anchors
	got := ThresholdToPercentile(2.78)
	if math.Abs(got-37.5) > 1e-9 {
		t.Errorf("ThresholdToPercentile(2.78) = %v, want 37.5", got)
	}
}

func TestThresholdToPercentileClamps(t *testing.T) {
	// Above the commonest anchor → lowest percentile in the table
	if got := ThresholdToPercentile(6.5); got != 0.5 {
		t.Errorf("ThresholdToPercentile(6.5) = %v, want 0.5", got)
	}

	// Below the rarest anchor → highest percentile in the table
	if got := ThresholdToPercentile(1.0); got != 99.5 {
		t.Errorf("ThresholdToPercentile(1.0) = %v, want 99.5", got)
	}
}

func TestThresholdToPercentileMonotonic(t *testing.T) {
	// Rarer-admitting threshold → larger estimated vocabulary → higher
	// percentile, so the function must be non-increasing in the threshold.
	prev := math.Inf(1)
	for th := 0.5; th <= 7.0; th += 0.01 {
		got := ThresholdToPercentile(th)
		if got < 0 || got > 100 {
			t.Fatalf("ThresholdToPercentile(%v) = %v, outside [0, 100]", th, got)
		}
		if got > prev+1e-9 {
			t.Fatalf("ThresholdToPercentile not non-increasing at %v: %v > %v", th, got, prev)
		}
		prev = got
	}
}

func TestThresholdToPercentilePure(t *testing.T) {
	first := ThresholdToPercentile(2.78)
	second := ThresholdToPercentile(2.78)
	if first != second {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
