package models

import "time"

// QuizAttempt is the append-only audit record of one graded definition.
// Rows are never updated after insert.
type QuizAttempt struct {
	ID                 int64     `json:"id"`
	WordID             int64     `json:"word_id"`
	UserDefinition     string    `json:"user_definition"`
	Score              int       `json:"score"`
	Reason             string    `json:"reason"`
	OfficialDefinition string    `json:"official_definition"`
	Synonyms           string    `json:"synonyms"`
	Example            string    `json:"example"`
	Etymology          string    `json:"etymology"`
	CreatedAt          time.Time `json:"created_at"`
}

type AnswerRequest struct {
	WordID     int64  `json:"word_id"`
	Definition string `json:"definition"`
}

// QueryRequest is the elaboration step after a partial-credit grade. The
// original definition is echoed back so the combined text can be re-graded.
type QueryRequest struct {
	WordID             int64  `json:"word_id"`
	OriginalDefinition string `json:"original_definition"`
	Elaboration        string `json:"elaboration"`
}

type AnswerResponse struct {
	Score      int     `json:"score"`
	Reason     string  `json:"reason"`
	Definition string  `json:"definition"`
	Synonyms   string  `json:"synonyms"`
	Example    string  `json:"example"`
	Etymology  string  `json:"etymology"`
	NeedsQuery bool    `json:"needs_query"`
	Mastered   bool    `json:"mastered"`
	Threshold  float64 `json:"threshold"`
}

// GraderUnavailableResponse tells the client to retry the same submission.
// Nothing was recorded server-side.
type GraderUnavailableResponse struct {
	APIError bool   `json:"api_error"`
	Reason   string `json:"reason"`
}

type NextWordResponse struct {
	Done      bool    `json:"done"`
	WordID    int64   `json:"word_id,omitempty"`
	Word      string  `json:"word,omitempty"`
	Remaining int     `json:"remaining,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

type QuizSummary struct {
	Total      int     `json:"total"`
	Mastered   int     `json:"mastered"`
	Threshold  float64 `json:"threshold"`
	Percentile float64 `json:"percentile"`
}
