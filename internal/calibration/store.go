package calibration

import (
	"database/sql"
	"fmt"

	"github.com/vocab-coach/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetCollection(collectionID, userID int64) (*models.WordCollection, error) {
	var c models.WordCollection
	err := s.db.QueryRow(
		`SELECT id, user_id, name, status, zipf_threshold, created_at
		 FROM word_collections WHERE id = $1 AND user_id = $2`,
		collectionID, userID,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.ZipfThreshold, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetScoredWords(collectionID int64) ([]models.ScoredWord, error) {
	// Ordered so tied scores land in the same position on every load; the
	// submitted answer sheet aligns with the sample positionally.
	rows, err := s.db.Query(
		`SELECT word, zipf_score FROM words
		 WHERE collection_id = $1 ORDER BY zipf_score DESC, word`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var words []models.ScoredWord
	for rows.Next() {
		var w models.ScoredWord
		if err := rows.Scan(&w.Word, &w.ZipfScore); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *Store) SetThreshold(collectionID int64, threshold float64) error {
	_, err := s.db.Exec(
		`UPDATE word_collections SET zipf_threshold = $1 WHERE id = $2`,
		threshold, collectionID,
	)
	if err != nil {
		return fmt.Errorf("set threshold: %w", err)
	}
	return nil
}
