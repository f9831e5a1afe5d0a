package grader

import (
	"regexp"
	"strings"
)

var scoreDigit = regexp.MustCompile(`[0-2]`)

// ParseGrade reads the line-oriented grading response. Parsing is tolerant:
// keys are case-insensitive, unknown lines are skipped, and missing fields
// fall back to placeholders. A score that cannot be read counts as 0.
func ParseGrade(raw string) *Result {
	result := &Result{
		Score:      0,
		Reason:     "Could not parse reason.",
		Definition: "Definition not provided.",
		Synonyms:   "Synonyms not provided.",
		Example:    "Example not provided.",
		Etymology:  "Etymology not provided.",
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "SCORE":
			if digit := scoreDigit.FindString(value); digit != "" {
				result.Score = int(digit[0] - '0')
			}
		case "REASON":
			result.Reason = value
		case "DEFINITION":
			result.Definition = value
		case "SYNONYMS":
			result.Synonyms = value
		case "EXAMPLE":
			result.Example = value
		case "ETYMOLOGY":
			result.Etymology = value
		}
	}

	return result
}
