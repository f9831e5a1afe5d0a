package quiz

import (
	"math"
	"testing"
)

func TestApplyGradeFullCredit(t *testing.T) {
	outcome := ApplyGrade(4.0, 2, false)

	if outcome.NeedsQuery {
		t.Error("full credit must not trigger the elaboration step")
	}
	if !outcome.Mastered {
		t.Error("full credit must mark the word mastered")
	}
	if outcome.Mistake {
		t.Error("full credit must not count a mistake")
	}
	if math.Abs(outcome.Threshold-3.85) > 1e-9 {
		t.Errorf("Threshold = %v, want 3.85", outcome.Threshold)
	}
}

func TestApplyGradeNoCredit(t *testing.T) {
	outcome := ApplyGrade(4.0, 0, false)

	if outcome.NeedsQuery {
		t.Error("no credit must not trigger the elaboration step")
	}
	if outcome.Mastered {
		t.Error("no credit must not mark mastered")
	}
	if !outcome.Mistake {
		t.Error("no credit must count a mistake")
	}
	if math.Abs(outcome.Threshold-4.15) > 1e-9 {
		t.Errorf("Threshold = %v, want 4.15", outcome.Threshold)
	}
}

func TestApplyGradePartialCreditDefers(t *testing.T) {
	outcome := ApplyGrade(4.0, 1, false)

	if !outcome.NeedsQuery {
		t.Error("first-call partial credit must defer to the elaboration step")
	}
	if outcome.Mastered || outcome.Mistake {
		t.Error("deferred grade must not touch the word")
	}
	if outcome.Threshold != 4.0 {
		t.Errorf("deferred grade must not move the threshold, got %v", outcome.Threshold)
	}
}

func TestApplyGradeAfterElaboration(t *testing.T) {
	// A 1 after elaboration is terminal: a mistake, threshold unchanged
	outcome := ApplyGrade(4.0, 1, true)
	if outcome.NeedsQuery {
		t.Error("re-graded answer must be terminal")
	}
	if outcome.Mastered {
		t.Error("partial credit after elaboration is not mastery")
	}
	if !outcome.Mistake {
		t.Error("partial credit after elaboration counts as a mistake")
	}
	if outcome.Threshold != 4.0 {
		t.Errorf("Threshold = %v, want unchanged 4.0", outcome.Threshold)
	}

	// A 2 after elaboration masters and tightens like any full credit
	outcome = ApplyGrade(4.0, 2, true)
	if !outcome.Mastered || outcome.NeedsQuery {
		t.Error("full credit after elaboration must master the word")
	}
	if math.Abs(outcome.Threshold-3.85) > 1e-9 {
		t.Errorf("Threshold = %v, want 3.85", outcome.Threshold)
	}
}

func TestCombineWithElaboration(t *testing.T) {
	got := CombineWithElaboration("a short time", "it also implies impermanence")
	want := "a short time. Furthermore: it also implies impermanence"
	if got != want {
		t.Errorf("CombineWithElaboration = %q, want %q", got, want)
	}
}
