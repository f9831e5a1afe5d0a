package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/vocab-coach/backend/internal/models"
)

// PageRange limits extraction to a 1-based inclusive page span.
// End == 0 means "to the last page".
type PageRange struct {
	Start int
	End   int
}

// Extractor turns an uploaded document into rarity-scored vocabulary.
// The heavy lifting (page reading, lemmatization, dictionary filtering,
// frequency scoring) lives in an external service; this side only ships the
// bytes over and decodes the ranked list.
type Extractor interface {
	Extract(ctx context.Context, document io.Reader, filename string, pages *PageRange) ([]models.ScoredWord, error)
}

// New selects a backend from the environment.
func New() Extractor {
	if os.Getenv("MOCK_EXTRACTOR") == "true" {
		log.Println("Extractor using mock word list")
		return NewMockExtractor()
	}

	baseURL := os.Getenv("EXTRACTOR_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	log.Println("Extractor using service:", baseURL)
	return NewHTTPExtractor(baseURL)
}

// ── HTTPExtractor — external extraction service ────────────

type HTTPExtractor struct {
	baseURL string
	client  *http.Client
}

func NewHTTPExtractor(baseURL string) *HTTPExtractor {
	return &HTTPExtractor{
		baseURL: baseURL,
		// Extraction chews through whole documents; give it room.
		client: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, document io.Reader, filename string, pages *PageRange) ([]models.ScoredWord, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("pdf", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, document); err != nil {
		return nil, fmt.Errorf("copy document: %w", err)
	}

	if pages != nil {
		if err := writer.WriteField("start_page", strconv.Itoa(pages.Start)); err != nil {
			return nil, fmt.Errorf("write start_page: %w", err)
		}
		if pages.End > 0 {
			if err := writer.WriteField("end_page", strconv.Itoa(pages.End)); err != nil {
				return nil, fmt.Errorf("write end_page: %w", err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, msg)
	}

	var words []models.ScoredWord
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	return words, nil
}

// ── MockExtractor — Local Development ──────────────────────

type MockExtractor struct{}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

func (m *MockExtractor) Extract(ctx context.Context, document io.Reader, filename string, pages *PageRange) ([]models.ScoredWord, error) {
	// Drain the upload so callers can treat the mock like the real thing.
	if _, err := io.Copy(io.Discard, document); err != nil {
		return nil, err
	}

	return []models.ScoredWord{
		{Word: "pusillanimous", ZipfScore: 1.78},
		{Word: "obsequious", ZipfScore: 2.14},
		{Word: "perfunctory", ZipfScore: 2.45},
		{Word: "fastidious", ZipfScore: 2.64},
		{Word: "pernicious", ZipfScore: 2.87},
		{Word: "ephemeral", ZipfScore: 2.99},
		{Word: "eloquent", ZipfScore: 3.21},
		{Word: "conspicuous", ZipfScore: 3.35},
		{Word: "candid", ZipfScore: 3.45},
		{Word: "peculiar", ZipfScore: 3.67},
		{Word: "triumph", ZipfScore: 3.96},
		{Word: "modest", ZipfScore: 4.03},
		{Word: "narrow", ZipfScore: 4.39},
		{Word: "domestic", ZipfScore: 4.69},
		{Word: "consider", ZipfScore: 4.99},
	}, nil
}
