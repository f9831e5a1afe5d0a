package models

import "time"

type CollectionStatus string

const (
	CollectionProcessing CollectionStatus = "processing"
	CollectionDone       CollectionStatus = "done"
	CollectionError      CollectionStatus = "error"
)

// WordCollection is one uploaded document's vocabulary, owned by a user.
// ZipfThreshold stays nil until the collection has been calibrated.
type WordCollection struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	Name          string           `json:"name"`
	Status        CollectionStatus `json:"status"`
	ZipfThreshold *float64         `json:"zipf_threshold,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type Word struct {
	ID           int64   `json:"id"`
	CollectionID int64   `json:"collection_id"`
	Word         string  `json:"word"`
	ZipfScore    float64 `json:"zipf_score"`
	Mastered     bool    `json:"mastered"`
	MistakeCount int     `json:"mistake_count"`
}

// CollectionStats is the dashboard row for one collection: how much of it
// sits below the learner's threshold and how much of that is mastered.
type CollectionStats struct {
	Collection WordCollection `json:"collection"`
	Total      int            `json:"total"`
	InRange    int            `json:"in_range"`
	Mastered   int            `json:"mastered"`
	Pct        int            `json:"pct"`
}

type CollectionDetail struct {
	Collection WordCollection `json:"collection"`
	Words      []Word         `json:"words"`
}

type CollectionStatusResponse struct {
	Status CollectionStatus `json:"status"`
}
