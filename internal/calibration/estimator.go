package calibration

import "github.com/vocab-coach/backend/internal/models"

// Operating range for a stored threshold. Words with zipf_score <= threshold
// are in quiz range, so a lower threshold admits only rarer words.
const (
	MinThreshold = 0.5
	MaxThreshold = 7.0
)

// EstimateThreshold turns ordered known/unknown answers to a calibration
// sample into a Zipf threshold: the midpoint between the last word the user
// knew and the first they didn't. Answers beyond the sample length are
// ignored. If every answered word was known the threshold drops to the
// floor (quiz the rarest words); if none were, it stays at the ceiling
// (quiz only common words).
func EstimateThreshold(sample []models.ScoredWord, answers []bool) float64 {
	var lastYes, firstNo float64
	var haveYes, haveNo bool

	for i, known := range answers {
		if i >= len(sample) {
			break
		}
		if known {
			lastYes = sample[i].ZipfScore
			haveYes = true
		} else if !haveNo {
			firstNo = sample[i].ZipfScore
			haveNo = true
		}
	}

	switch {
	case haveYes && haveNo:
		return (lastYes + firstNo) / 2
	case haveYes:
		return MinThreshold
	default:
		return MaxThreshold
	}
}

// ClampThreshold bounds an explicit threshold override to the operating range.
func ClampThreshold(v float64) float64 {
	if v < MinThreshold {
		return MinThreshold
	}
	if v > MaxThreshold {
		return MaxThreshold
	}
	return v
}
