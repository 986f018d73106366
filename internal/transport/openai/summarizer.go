package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultSummaryModel    = openai.GPT3Dot5Turbo
	defaultMaxSummaryChars = 12000
	summaryMaxTokens       = 800
	summaryTemperature     = 0.1
)

const summaryPrompt = `Please provide a comprehensive summary of this document titled '%s'.

Include the following in your summary:
1. Main topic and purpose of the document
2. Key concepts, themes, or subject areas covered
3. Important details, data, or findings
4. Target audience or context
5. Any specific terminology or technical concepts

Document content:
%s

Provide a detailed summary that would help someone understand the document's content and context:`

// Summarizer writes document summaries via the chat completion API.
type Summarizer struct {
	client   *openai.Client
	model    string
	maxChars int
	logger   *zap.Logger
}

// SummarizerConfig holds the summary generation settings.
type SummarizerConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	MaxChars int
	Logger   *zap.Logger
}

// NewSummarizer creates a chat-completion document summarizer.
func NewSummarizer(cfg *SummarizerConfig) *Summarizer {
	model := cfg.Model
	if model == "" {
		model = defaultSummaryModel
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = defaultMaxSummaryChars
	}

	return &Summarizer{
		client:   newClient(cfg.APIKey, cfg.BaseURL),
		model:    model,
		maxChars: maxChars,
		logger:   cfg.Logger,
	}
}

// Summarize returns a model-written summary of the document content.
// Content beyond the configured limit is truncated before the call. A
// successful call with empty output degrades to a placeholder summary.
func (s *Summarizer) Summarize(ctx context.Context, documentName, content string) (string, error) {
	content = truncateRunes(content, s.maxChars)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(summaryPrompt, documentName, content),
			},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		summary = fmt.Sprintf("Summary generation failed for %s", documentName)
	}

	s.logger.Info("Generated document summary",
		zap.String("document_name", documentName),
		zap.Int("summary_chars", len(summary)))

	return summary, nil
}

func truncateRunes(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars]) + "..."
}
