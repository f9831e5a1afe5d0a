package grader

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned once the retry budget is exhausted. The caller
// must not record anything for the attempt; the same submission is safe to
// resend.
var ErrUnavailable = errors.New("grading backend unavailable")

// Result is one graded definition.
type Result struct {
	Score      int
	Reason     string
	Definition string
	Synonyms   string
	Example    string
	Etymology  string
}

// Grader scores a free-text definition of a word from 0 to 2.
type Grader interface {
	Grade(ctx context.Context, word, definition string) (*Result, error)
}

// RetryPolicy controls transient-failure retries around the backend call.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Delay returns the backoff before the given retry (1-based): base, 2x, 4x...
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(1<<uint(attempt-1))
}

// New selects a backend from the environment.
func New() Grader {
	if os.Getenv("MOCK_GRADER") == "true" {
		log.Println("Grader using mock scoring")
		return NewMockGrader()
	}

	if os.Getenv("GRADER_PROVIDER") == "openai" {
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			model = "gpt-4o-mini"
		}
		log.Println("Grader using OpenAI-compatible API:", model)
		return NewOpenAIGrader(model, DefaultRetryPolicy())
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	log.Println("Grader using Anthropic API:", model)
	return NewAnthropicGrader(model, DefaultRetryPolicy())
}

// ── AnthropicGrader — Anthropic SDK (Production) ───────────

type AnthropicGrader struct {
	client *anthropic.Client
	model  string
	retry  RetryPolicy
}

func NewAnthropicGrader(model string, retry RetryPolicy) *AnthropicGrader {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &AnthropicGrader{client: &client, model: model, retry: retry}
}

func (g *AnthropicGrader) Grade(ctx context.Context, word, definition string) (*Result, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: GradeSystemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildGradePrompt(word, definition))),
		},
	}

	var lastErr error
	for attempt := 1; attempt <= g.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := g.retry.Delay(attempt - 1)
			log.Printf("[grader] retrying Anthropic call in %v (attempt %d)", delay, attempt)
			time.Sleep(delay)
		}

		message, err := g.client.Messages.New(ctx, params)
		if err != nil {
			lastErr = err
			log.Printf("[grader] Anthropic attempt %d failed: %v", attempt, err)
			continue
		}

		var responseText string
		for _, block := range message.Content {
			if block.Type == "text" {
				responseText = block.Text
				break
			}
		}
		if responseText == "" {
			lastErr = errors.New("no text content in API response")
			continue
		}

		return ParseGrade(responseText), nil
	}

	log.Printf("[grader] Anthropic unavailable after %d attempts: %v", g.retry.MaxAttempts, lastErr)
	return nil, ErrUnavailable
}

// ── OpenAIGrader — OpenAI-compatible hosts ─────────────────

type OpenAIGrader struct {
	client *openai.Client
	model  string
	retry  RetryPolicy
}

// NewOpenAIGrader talks to api.openai.com by default; set OPENAI_BASE_URL
// to point it at any OpenAI-compatible endpoint.
func NewOpenAIGrader(model string, retry RetryPolicy) *OpenAIGrader {
	cfg := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return &OpenAIGrader{client: openai.NewClientWithConfig(cfg), model: model, retry: retry}
}

func (g *OpenAIGrader) Grade(ctx context.Context, word, definition string) (*Result, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: GradeSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: BuildGradePrompt(word, definition)},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= g.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := g.retry.Delay(attempt - 1)
			log.Printf("[grader] retrying OpenAI call in %v (attempt %d)", delay, attempt)
			time.Sleep(delay)
		}

		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			log.Printf("[grader] OpenAI attempt %d failed: %v", attempt, err)
			continue
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = errors.New("empty completion response")
			continue
		}

		return ParseGrade(resp.Choices[0].Message.Content), nil
	}

	log.Printf("[grader] OpenAI unavailable after %d attempts: %v", g.retry.MaxAttempts, lastErr)
	return nil, ErrUnavailable
}

// ── MockGrader — Local Development ─────────────────────────

// MockGrader scores by answer length so every UI path is reachable without
// an API key: empty answers score 0, short ones 1 (triggering the
// elaboration step), anything substantial 2.
type MockGrader struct{}

func NewMockGrader() *MockGrader {
	return &MockGrader{}
}

func (m *MockGrader) Grade(ctx context.Context, word, definition string) (*Result, error) {
	score := 2
	reason := "[Mock] Complete understanding demonstrated."
	switch {
	case len(definition) == 0:
		score = 0
		reason = "[Mock] No definition given."
	case len(definition) < 15:
		score = 1
		reason = "[Mock] Partial understanding; answer is vague."
	}

	return &Result{
		Score:      score,
		Reason:     reason,
		Definition: "[Mock] The standard dictionary definition of " + word + ".",
		Synonyms:   "[Mock] close, near, similar",
		Example:    "[Mock] An example sentence using " + word + ".",
		Etymology:  "[Mock] From Latin roots.",
	}, nil
}
