package collections

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

func (s *Store) Create(userID int64, name string) (*models.WordCollection, error) {
	var c models.WordCollection
	err := s.db.QueryRow(
		`INSERT INTO word_collections (user_id, name, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, status, zipf_threshold, created_at`,
		userID, name, models.CollectionProcessing,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.ZipfThreshold, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &c, nil
}

func (s *Store) Get(collectionID, userID int64) (*models.WordCollection, error) {
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

func (s *Store) List(userID int64) ([]models.WordCollection, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, name, status, zipf_threshold, created_at
		 FROM word_collections WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []models.WordCollection
	for rows.Next() {
		var c models.WordCollection
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.ZipfThreshold, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func (s *Store) Delete(collectionID, userID int64) error {
	result, err := s.db.Exec(
		`DELETE FROM word_collections WHERE id = $1 AND user_id = $2`,
		collectionID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) SetStatus(collectionID int64, status models.CollectionStatus) error {
	_, err := s.db.Exec(
		`UPDATE word_collections SET status = $1 WHERE id = $2`,
		status, collectionID,
	)
	return err
}

// SaveWords inserts the extracted vocabulary and flips the collection to
// done in one transaction, using a background-safe context so a client
// disconnect can't strand a half-written list.
func (s *Store) SaveWords(ctx context.Context, collectionID int64, words []models.ScoredWord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO words (collection_id, word, zipf_score) VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.Exec(collectionID, w.Word, w.ZipfScore); err != nil {
			return fmt.Errorf("insert word %q: %w", w.Word, err)
		}
	}

	_, err = tx.Exec(
		`UPDATE word_collections SET status = $1 WHERE id = $2`,
		models.CollectionDone, collectionID,
	)
	if err != nil {
		return fmt.Errorf("mark done: %w", err)
	}

	return tx.Commit()
}

// Words returns a collection's words ordered rare → common, the way the
// list view presents them.
func (s *Store) Words(collectionID int64) ([]models.Word, error) {
	rows, err := s.db.Query(
		`SELECT id, collection_id, word, zipf_score, mastered, mistake_count
		 FROM words WHERE collection_id = $1 ORDER BY zipf_score ASC`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
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

// Stats computes the dashboard counters for one collection. Without a
// threshold nothing is in range yet.
func (s *Store) Stats(c models.WordCollection) (models.CollectionStats, error) {
	stats := models.CollectionStats{Collection: c}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM words WHERE collection_id = $1`, c.ID,
	).Scan(&stats.Total)
	if err != nil {
		return stats, fmt.Errorf("count words: %w", err)
	}

	if c.ZipfThreshold == nil {
		return stats, nil
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE mastered)
		 FROM words WHERE collection_id = $1 AND zipf_score <= $2`,
		c.ID, *c.ZipfThreshold,
	).Scan(&stats.InRange, &stats.Mastered)
	if err != nil {
		return stats, fmt.Errorf("count in range: %w", err)
	}

	if stats.InRange > 0 {
		stats.Pct = int(float64(stats.Mastered)/float64(stats.InRange)*100 + 0.5)
	}
	return stats, nil
}
