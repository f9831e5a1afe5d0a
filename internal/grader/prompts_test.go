package grader

import (
	"strings"
	"testing"
)

func TestGradeSystemPrompt(t *testing.T) {
	prompt := GradeSystemPrompt()

	required := []string{
		"0, 1, or 2",
		"2 Points", "1 Point", "0 Points",
		"CIRCULAR DEFINITIONS",
		"SCORE:", "REASON:", "DEFINITION:", "SYNONYMS:", "EXAMPLE:", "ETYMOLOGY:",
	}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("system prompt missing %q", keyword)
		}
	}
}

func TestBuildGradePrompt(t *testing.T) {
	prompt := BuildGradePrompt("ephemeral", "lasting a short time")

	if !strings.Contains(prompt, `"ephemeral"`) {
		t.Error("user prompt missing target word")
	}
	if !strings.Contains(prompt, `"lasting a short time"`) {
		t.Error("user prompt missing examinee definition")
	}
}

func TestRetryPolicyDelayDoubles(t *testing.T) {
	p := DefaultRetryPolicy()

	if p.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	if p.Delay(2) != 2*p.Delay(1) {
		t.Errorf("Delay(2) = %v, want double Delay(1) = %v", p.Delay(2), p.Delay(1))
	}
	if p.Delay(3) != 4*p.Delay(1) {
		t.Errorf("Delay(3) = %v, want quadruple Delay(1)", p.Delay(3))
	}
}
