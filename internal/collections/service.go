package collections

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/vocab-coach/backend/internal/extractor"
	"github.com/vocab-coach/backend/internal/models"
)

type Service struct {
	store     *Store
	extractor extractor.Extractor
}

func NewService(store *Store, ex extractor.Extractor) *Service {
	return &Service{store: store, extractor: ex}
}

// CreateFromUpload records the collection and starts extraction in the
// background. The caller gets the processing-state row back immediately and
// polls the status endpoint.
func (s *Service) CreateFromUpload(userID int64, name string, document []byte, filename string, pages *extractor.PageRange) (*models.WordCollection, error) {
	collection, err := s.store.Create(userID, name)
	if err != nil {
		return nil, err
	}

	go s.runExtraction(collection.ID, document, filename, pages)

	return collection, nil
}

// runExtraction is the background half of an upload. It owns its own
// context: the uploading request has long since returned.
func (s *Service) runExtraction(collectionID int64, document []byte, filename string, pages *extractor.PageRange) {
	ctx := context.Background()

	words, err := s.extractor.Extract(ctx, bytes.NewReader(document), filename, pages)
	if err != nil {
		log.Printf("[collections] extraction failed for collection %d: %v", collectionID, err)
		if err := s.store.SetStatus(collectionID, models.CollectionError); err != nil {
			log.Printf("[collections] mark collection %d error: %v", collectionID, err)
		}
		return
	}

	if err := s.store.SaveWords(ctx, collectionID, words); err != nil {
		log.Printf("[collections] save words for collection %d: %v", collectionID, err)
		if err := s.store.SetStatus(collectionID, models.CollectionError); err != nil {
			log.Printf("[collections] mark collection %d error: %v", collectionID, err)
		}
		return
	}

	log.Printf("[collections] collection %d ready: %d words", collectionID, len(words))
}

// BuildName composes the display name from the uploaded filename and the
// requested page range.
func BuildName(baseName string, pages *extractor.PageRange) string {
	if pages == nil {
		return fmt.Sprintf("%s (full)", baseName)
	}
	if pages.End > 0 {
		return fmt.Sprintf("%s (pages %d-%d)", baseName, pages.Start, pages.End)
	}
	return fmt.Sprintf("%s (pages %d+)", baseName, pages.Start)
}
