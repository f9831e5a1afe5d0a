package quiz

import (
	"context"
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

func (s *Store) GetWord(wordID int64) (*models.Word, error) {
	var w models.Word
	err := s.db.QueryRow(
		`SELECT id, collection_id, word, zipf_score, mastered, mistake_count
		 FROM words WHERE id = $1`,
		wordID,
	).Scan(&w.ID, &w.CollectionID, &w.Word, &w.ZipfScore, &w.Mastered, &w.MistakeCount)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// EligibleWords loads the unmastered words within the threshold.
func (s *Store) EligibleWords(collectionID int64, threshold float64) ([]models.Word, error) {
	rows, err := s.db.Query(
		`SELECT id, collection_id, word, zipf_score, mastered, mistake_count
		 FROM words
		 WHERE collection_id = $1 AND mastered = FALSE AND zipf_score <= $2`,
		collectionID, threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("eligible words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.CollectionID, &w.Word, &w.ZipfScore, &w.Mastered, &w.MistakeCount); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *Store) CountInRange(collectionID int64, threshold float64) (total, mastered int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE mastered)
		 FROM words WHERE collection_id = $1 AND zipf_score <= $2`,
		collectionID, threshold,
	).Scan(&total, &mastered)
	if err != nil {
		return 0, 0, fmt.Errorf("count in range: %w", err)
	}
	return total, mastered, nil
}

// CommitAnswer applies one whole answer cycle atomically: the attempt
// record, the word's mastery/mistake state, and the collection threshold
// land together or not at all.
func (s *Store) CommitAnswer(ctx context.Context, word *models.Word, attempt models.QuizAttempt, outcome Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO quiz_attempts
		 (word_id, user_definition, score, reason, official_definition, synonyms, example, etymology)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		attempt.WordID, attempt.UserDefinition, attempt.Score, attempt.Reason,
		attempt.OfficialDefinition, attempt.Synonyms, attempt.Example, attempt.Etymology,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	if !outcome.NeedsQuery {
		if outcome.Mastered {
			// Mastery is monotonic: only ever set, never cleared here.
			if _, err := tx.Exec(`UPDATE words SET mastered = TRUE WHERE id = $1`, word.ID); err != nil {
				return fmt.Errorf("set mastered: %w", err)
			}
		}
		if outcome.Mistake {
			if _, err := tx.Exec(`UPDATE words SET mistake_count = mistake_count + 1 WHERE id = $1`, word.ID); err != nil {
				return fmt.Errorf("bump mistake count: %w", err)
			}
		}
		_, err = tx.Exec(
			`UPDATE word_collections SET zipf_threshold = $1 WHERE id = $2`,
			outcome.Threshold, word.CollectionID,
		)
		if err != nil {
			return fmt.Errorf("update threshold: %w", err)
		}
	}

	return tx.Commit()
}
