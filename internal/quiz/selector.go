package quiz

import (
	"math/rand"

	"github.com/vocab-coach/backend/internal/models"
)

// SelectNext picks one word uniformly at random from the eligible pool and
// reports how many eligible words there are in total (including the pick).
// An empty pool returns nil, meaning the quiz is done. Uses the top-level
// rand source, which is safe for concurrent callers.
func SelectNext(eligible []models.Word) (*models.Word, int) {
	if len(eligible) == 0 {
		return nil, 0
	}
	w := eligible[rand.Intn(len(eligible))]
	return &w, len(eligible)
}
