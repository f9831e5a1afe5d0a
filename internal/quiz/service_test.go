package quiz

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/vocab-coach/backend/internal/grader"
	"github.com/vocab-coach/backend/internal/models"
)

// fakeStore serves one collection and one word from memory and records
// every commit so tests can assert exactly what an answer cycle persisted.
type fakeStore struct {
	collection *models.WordCollection
	word       *models.Word
	commits    []commitRecord
}

type commitRecord struct {
	attempt models.QuizAttempt
	outcome Outcome
}

func (f *fakeStore) GetCollection(collectionID, userID int64) (*models.WordCollection, error) {
	if f.collection == nil || f.collection.ID != collectionID || f.collection.UserID != userID {
		return nil, sql.ErrNoRows
	}
	c := *f.collection
	return &c, nil
}

func (f *fakeStore) GetWord(wordID int64) (*models.Word, error) {
	if f.word == nil || f.word.ID != wordID {
		return nil, sql.ErrNoRows
	}
	w := *f.word
	return &w, nil
}

func (f *fakeStore) EligibleWords(collectionID int64, threshold float64) ([]models.Word, error) {
	return nil, nil
}

func (f *fakeStore) CountInRange(collectionID int64, threshold float64) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeStore) CommitAnswer(ctx context.Context, word *models.Word, attempt models.QuizAttempt, outcome Outcome) error {
	f.commits = append(f.commits, commitRecord{attempt: attempt, outcome: outcome})
	return nil
}

// stubGrader returns a fixed score (or error) and records what it was asked
// to grade.
type stubGrader struct {
	score          int
	err            error
	calls          int
	lastDefinition string
}

func (g *stubGrader) Grade(ctx context.Context, word, definition string) (*grader.Result, error) {
	g.calls++
	g.lastDefinition = definition
	if g.err != nil {
		return nil, g.err
	}
	return &grader.Result{Score: g.score, Reason: "stub"}, nil
}

func threshold(v float64) *float64 { return &v }

func newCycleFixture(g grader.Grader) (*Service, *fakeStore) {
	store := &fakeStore{
		collection: &models.WordCollection{ID: 10, UserID: 1, ZipfThreshold: threshold(4.0)},
		word:       &models.Word{ID: 100, CollectionID: 10, Word: "ephemeral"},
	}
	svc := &Service{store: store, grader: g, locks: make(map[int64]*sync.Mutex)}
	return svc, store
}

func TestAnswerOracleOutageMutatesNothing(t *testing.T) {
	g := &stubGrader{err: grader.ErrUnavailable}
	svc, store := newCycleFixture(g)

	_, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "lasting a very short time",
	})
	if !errors.Is(err, grader.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if len(store.commits) != 0 {
		t.Errorf("an unavailable grader committed %d records, want 0", len(store.commits))
	}
}

func TestAnswerPartialCreditDefersMutations(t *testing.T) {
	g := &stubGrader{score: 1}
	svc, store := newCycleFixture(g)

	resp, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "something short",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.NeedsQuery {
		t.Error("score 1 on the first pass must request an elaboration")
	}
	if resp.Mastered {
		t.Error("deferred grade must not report mastery")
	}
	if resp.Threshold != 4.0 {
		t.Errorf("Threshold = %v, want unchanged 4.0", resp.Threshold)
	}

	// The attempt itself is still recorded, with every mutation deferred.
	if len(store.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(store.commits))
	}
	c := store.commits[0]
	if c.attempt.Score != 1 || c.attempt.UserDefinition != "something short" {
		t.Errorf("recorded attempt = %+v, want score 1 with the submitted text", c.attempt)
	}
	if !c.outcome.NeedsQuery || c.outcome.Mastered || c.outcome.Mistake {
		t.Errorf("outcome = %+v, want deferred with no word mutations", c.outcome)
	}
	if c.outcome.Threshold != 4.0 {
		t.Errorf("committed threshold = %v, want unchanged 4.0", c.outcome.Threshold)
	}
}

func TestAnswerFullCreditCommitsMastery(t *testing.T) {
	svc, store := newCycleFixture(grader.NewMockGrader())

	resp, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "lasting a very short time",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.NeedsQuery || !resp.Mastered {
		t.Errorf("resp = %+v, want terminal mastery", resp)
	}
	if len(store.commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(store.commits))
	}
	c := store.commits[0]
	if !c.outcome.Mastered || c.outcome.Mistake || c.outcome.NeedsQuery {
		t.Errorf("outcome = %+v, want mastered", c.outcome)
	}
	if math.Abs(c.outcome.Threshold-3.85) > 1e-9 {
		t.Errorf("committed threshold = %v, want 3.85", c.outcome.Threshold)
	}
}

func TestAnswerNoCreditCommitsMistake(t *testing.T) {
	g := &stubGrader{score: 0}
	svc, store := newCycleFixture(g)

	resp, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "a kind of fish",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.NeedsQuery || resp.Mastered {
		t.Errorf("resp = %+v, want terminal non-mastery", resp)
	}
	c := store.commits[0]
	if c.outcome.Mastered || !c.outcome.Mistake {
		t.Errorf("outcome = %+v, want a mistake", c.outcome)
	}
	if math.Abs(c.outcome.Threshold-4.15) > 1e-9 {
		t.Errorf("committed threshold = %v, want 4.15", c.outcome.Threshold)
	}
}

func TestAnswerRejectsForeignWord(t *testing.T) {
	g := &stubGrader{score: 2}
	svc, store := newCycleFixture(g)
	store.word.CollectionID = 99

	_, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "lasting a very short time",
	})
	if !errors.Is(err, ErrWordMismatch) {
		t.Fatalf("err = %v, want ErrWordMismatch", err)
	}
	if g.calls != 0 {
		t.Errorf("grader called %d times for a foreign word, want 0", g.calls)
	}
	if len(store.commits) != 0 {
		t.Errorf("commits = %d, want 0", len(store.commits))
	}
}

func TestQueryRegradesCombinedText(t *testing.T) {
	g := &stubGrader{score: 2}
	svc, store := newCycleFixture(g)

	resp, err := svc.Query(context.Background(), 1, 10, models.QueryRequest{
		WordID:             100,
		OriginalDefinition: "something short",
		Elaboration:        "it does not last long",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "something short. Furthermore: it does not last long"
	if g.lastDefinition != want {
		t.Errorf("graded text = %q, want %q", g.lastDefinition, want)
	}
	if !resp.Mastered {
		t.Error("full credit on the re-grade must master the word")
	}
	if len(store.commits) != 1 || !store.commits[0].outcome.Mastered {
		t.Errorf("commits = %+v, want one mastery commit", store.commits)
	}
}

func TestQueryPartialCreditIsTerminal(t *testing.T) {
	g := &stubGrader{score: 1}
	svc, store := newCycleFixture(g)

	resp, err := svc.Query(context.Background(), 1, 10, models.QueryRequest{
		WordID:             100,
		OriginalDefinition: "something short",
		Elaboration:        "still vague",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.NeedsQuery {
		t.Error("a re-graded answer must never request another elaboration")
	}
	c := store.commits[0]
	if c.outcome.NeedsQuery || c.outcome.Mastered || !c.outcome.Mistake {
		t.Errorf("outcome = %+v, want terminal mistake", c.outcome)
	}
	if c.outcome.Threshold != 4.0 {
		t.Errorf("committed threshold = %v, want unchanged 4.0", c.outcome.Threshold)
	}
}

func TestAnswerRequiresCalibration(t *testing.T) {
	g := &stubGrader{score: 2}
	svc, store := newCycleFixture(g)
	store.collection.ZipfThreshold = nil

	_, err := svc.Answer(context.Background(), 1, 10, models.AnswerRequest{
		WordID: 100, Definition: "lasting a very short time",
	})
	if !errors.Is(err, ErrNotCalibrated) {
		t.Fatalf("err = %v, want ErrNotCalibrated", err)
	}
	if g.calls != 0 || len(store.commits) != 0 {
		t.Error("an uncalibrated collection must not reach the grader or the store")
	}
}
