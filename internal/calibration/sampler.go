package calibration

import (
	"math"
	"sort"

	"github.com/vocab-coach/backend/internal/models"
)

// DefaultSampleSize is how many words a calibration round presents.
const DefaultSampleSize = 15

// Sample selects count words from the collection for calibration, ordered
// common → rare (descending Zipf). Indices follow a square-root curve over
// the sorted list, so the sample is sparse at the common end and dense at
// the rare end, where the known/unknown boundary actually lives.
//
// Duplicate indices produced by rounding are kept: the answer sheet aligns
// with this output positionally and must match it element for element.
func Sample(words []models.ScoredWord, count int) []models.ScoredWord {
	sorted := make([]models.ScoredWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZipfScore > sorted[j].ZipfScore
	})

	if count <= 0 {
		return []models.ScoredWord{}
	}
	if len(sorted) <= count {
		return sorted
	}
	if count == 1 {
		return sorted[:1]
	}

	n := float64(len(sorted) - 1)
	sample := make([]models.ScoredWord, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Round(n * math.Sqrt(float64(i)/float64(count-1))))
		sample = append(sample, sorted[idx])
	}
	return sample
}
