package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/vocab-coach/backend/internal/calibration"
	"github.com/vocab-coach/backend/internal/grader"
	"github.com/vocab-coach/backend/internal/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNotCalibrated   = errors.New("collection not calibrated")
	ErrWordMismatch    = errors.New("word does not belong to collection")
	ErrEmptyDefinition = errors.New("definition is empty")
)

// storage is what the service needs from the quiz store.
type storage interface {
	GetCollection(collectionID, userID int64) (*models.WordCollection, error)
	GetWord(wordID int64) (*models.Word, error)
	EligibleWords(collectionID int64, threshold float64) ([]models.Word, error)
	CountInRange(collectionID int64, threshold float64) (total, mastered int, err error)
	CommitAnswer(ctx context.Context, word *models.Word, attempt models.QuizAttempt, outcome Outcome) error
}

type Service struct {
	store  storage
	grader grader.Grader

	// One lock per collection: a whole answer cycle (read, grade, commit)
	// runs under it so threshold updates never interleave.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(store *Store, g grader.Grader) *Service {
	return &Service{
		store:  store,
		grader: g,
		locks:  make(map[int64]*sync.Mutex),
	}
}

func (s *Service) collectionLock(collectionID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[collectionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[collectionID] = lock
	}
	return lock
}

// Next picks a random unmastered in-range word. An uncalibrated collection
// behaves like an exhausted one: done, nothing to quiz.
func (s *Service) Next(userID, collectionID int64) (*models.NextWordResponse, error) {
	collection, err := s.loadCollection(userID, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.ZipfThreshold == nil {
		return &models.NextWordResponse{Done: true}, nil
	}

	eligible, err := s.store.EligibleWords(collectionID, *collection.ZipfThreshold)
	if err != nil {
		return nil, err
	}

	word, remaining := SelectNext(eligible)
	if word == nil {
		return &models.NextWordResponse{Done: true}, nil
	}

	return &models.NextWordResponse{
		Done:      false,
		WordID:    word.ID,
		Word:      word.Word,
		Remaining: remaining,
		Threshold: *collection.ZipfThreshold,
	}, nil
}

// Summary reports in-range progress for the quiz screen.
func (s *Service) Summary(userID, collectionID int64) (*models.QuizSummary, error) {
	collection, err := s.loadCollection(userID, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.ZipfThreshold == nil {
		return nil, ErrNotCalibrated
	}

	total, mastered, err := s.store.CountInRange(collectionID, *collection.ZipfThreshold)
	if err != nil {
		return nil, err
	}

	return &models.QuizSummary{
		Total:      total,
		Mastered:   mastered,
		Threshold:  *collection.ZipfThreshold,
		Percentile: calibration.ThresholdToPercentile(*collection.ZipfThreshold),
	}, nil
}

// Answer grades a definition and applies the outcome. A score of 1 is
// provisional: the attempt is recorded but mastery, mistake count and
// threshold wait for the elaboration re-grade (Query).
func (s *Service) Answer(ctx context.Context, userID, collectionID int64, req models.AnswerRequest) (*models.AnswerResponse, error) {
	definition := strings.TrimSpace(req.Definition)
	if definition == "" {
		return nil, ErrEmptyDefinition
	}
	return s.runCycle(ctx, userID, collectionID, req.WordID, definition, false)
}

// Query re-grades the original answer combined with the elaboration and
// applies the final outcome.
func (s *Service) Query(ctx context.Context, userID, collectionID int64, req models.QueryRequest) (*models.AnswerResponse, error) {
	combined := CombineWithElaboration(req.OriginalDefinition, strings.TrimSpace(req.Elaboration))
	return s.runCycle(ctx, userID, collectionID, req.WordID, combined, true)
}

func (s *Service) runCycle(ctx context.Context, userID, collectionID, wordID int64, definition string, elaborated bool) (*models.AnswerResponse, error) {
	lock := s.collectionLock(collectionID)
	lock.Lock()
	defer lock.Unlock()

	collection, err := s.loadCollection(userID, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.ZipfThreshold == nil {
		return nil, ErrNotCalibrated
	}

	word, err := s.store.GetWord(wordID)
	if err == sql.ErrNoRows {
		return nil, ErrWordMismatch
	}
	if err != nil {
		return nil, err
	}
	if word.CollectionID != collectionID {
		return nil, ErrWordMismatch
	}

	// The grader call is the only suspension point in the cycle. If it
	// fails, nothing below runs and nothing is recorded.
	result, err := s.grader.Grade(ctx, word.Word, definition)
	if err != nil {
		return nil, err
	}

	outcome := ApplyGrade(*collection.ZipfThreshold, result.Score, elaborated)

	attempt := models.QuizAttempt{
		WordID:             word.ID,
		UserDefinition:     definition,
		Score:              result.Score,
		Reason:             result.Reason,
		OfficialDefinition: result.Definition,
		Synonyms:           result.Synonyms,
		Example:            result.Example,
		Etymology:          result.Etymology,
	}

	if err := s.store.CommitAnswer(ctx, word, attempt, outcome); err != nil {
		return nil, err
	}

	return &models.AnswerResponse{
		Score:      result.Score,
		Reason:     result.Reason,
		Definition: result.Definition,
		Synonyms:   result.Synonyms,
		Example:    result.Example,
		Etymology:  result.Etymology,
		NeedsQuery: outcome.NeedsQuery,
		Mastered:   word.Mastered || outcome.Mastered,
		Threshold:  outcome.Threshold,
	}, nil
}

func (s *Service) loadCollection(userID, collectionID int64) (*models.WordCollection, error) {
	collection, err := s.store.GetCollection(collectionID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}
