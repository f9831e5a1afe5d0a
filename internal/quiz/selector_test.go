package quiz

import (
	"sync"
	"testing"

	"github.com/vocab-coach/backend/internal/models"
)

func TestSelectNextEmptyPool(t *testing.T) {
	word, remaining := SelectNext(nil)
	if word != nil {
		t.Errorf("SelectNext(empty) returned %v, want nil", word)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

func TestSelectNextReportsPoolSize(t *testing.T) {
	pool := []models.Word{
		{ID: 1, Word: "candid"},
		{ID: 2, Word: "eloquent"},
		{ID: 3, Word: "ephemeral"},
	}

	word, remaining := SelectNext(pool)
	if word == nil {
		t.Fatal("SelectNext returned nil for a non-empty pool")
	}
	if remaining != 3 {
		t.Errorf("remaining = %d, want 3", remaining)
	}
}

func TestSelectNextCoversWholePool(t *testing.T) {
	pool := []models.Word{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
	}

	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		word, _ := SelectNext(pool)
		seen[word.ID] = true
	}
	if len(seen) != len(pool) {
		t.Errorf("200 draws hit %d distinct words, want %d", len(seen), len(pool))
	}
}

// Concurrent next-word requests share the selector; run with -race.
func TestSelectNextConcurrent(t *testing.T) {
	pool := []models.Word{
		{ID: 1}, {ID: 2}, {ID: 3},
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if word, _ := SelectNext(pool); word == nil {
					t.Error("SelectNext returned nil for a non-empty pool")
				}
			}
		}()
	}
	wg.Wait()
}
