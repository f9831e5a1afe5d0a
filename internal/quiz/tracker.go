package quiz

import "github.com/vocab-coach/backend/internal/calibration"

// ThresholdStep is how far one graded answer moves the threshold.
const ThresholdStep = 0.15

// UpdateThreshold nudges the collection's Zipf threshold after a terminal
// grade. Full credit tightens it (rarer words next), no credit loosens it
// (retreat to commoner words). Partial credit leaves it alone: the caller
// must obtain a final re-grade through the elaboration step first, then
// apply that score here.
func UpdateThreshold(current float64, score int) float64 {
	switch score {
	case 2:
		next := current - ThresholdStep
		if next < calibration.MinThreshold {
			return calibration.MinThreshold
		}
		return next
	case 0:
		next := current + ThresholdStep
		if next > calibration.MaxThreshold {
			return calibration.MaxThreshold
		}
		return next
	default:
		return current
	}
}
