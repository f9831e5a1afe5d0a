package quiz

// Outcome is the full set of state changes one graded answer produces.
type Outcome struct {
	// NeedsQuery means the grade is provisional: collect an elaboration,
	// re-grade the combined text, and apply that final score instead.
	NeedsQuery bool
	// Mastered marks the word permanently learned. Never unset here.
	Mastered bool
	// Mistake increments the word's mistake count.
	Mistake bool
	// Threshold is the collection threshold after this answer.
	Threshold float64
}

// ApplyGrade resolves a grade into its outcome. elaborated is false on the
// first grading call and true on the re-grade after the elaboration step.
// A first-call score of 1 defers every mutation: partial understanding
// triggers a follow-up probe before the record is allowed to move.
func ApplyGrade(threshold float64, score int, elaborated bool) Outcome {
	if score == 1 && !elaborated {
		return Outcome{NeedsQuery: true, Threshold: threshold}
	}
	return Outcome{
		Mastered:  score == 2,
		Mistake:   score != 2,
		Threshold: UpdateThreshold(threshold, score),
	}
}

// CombineWithElaboration builds the text that is re-graded after the
// follow-up probe. The separator is fixed: grading history stays comparable
// across attempts.
func CombineWithElaboration(original, elaboration string) string {
	return original + ". Furthermore: " + elaboration
}
