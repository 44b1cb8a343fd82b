package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	articleschema "proxyfaqs.dev/faqforge/schema"
)

const (
	defaultModel       = "grok-4-fast"
	defaultMaxTokens   = 4000
	defaultTemperature = 0.7
	maxAttempts        = 3
	retryBackoffStep   = 3 * time.Second
)

// ClientConfig holds the settings for the OpenAI-compatible generation API.
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client calls an OpenAI-compatible chat completion API and decodes the
// structured article it returns.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      zerolog.Logger
}

func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
		logger:      logger,
	}
}

// GenerateArticle sends the prompt and returns the validated article plus the
// total tokens the API reported. Decode failures and API errors are retried
// with linear backoff before giving up.
func (c *Client) GenerateArticle(ctx context.Context, prompt string) (*articleschema.Article, int, error) {
	if c == nil || c.client == nil {
		return nil, 0, fmt.Errorf("generation client is not initialized")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * retryBackoffStep
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
		})
		if err != nil {
			lastErr = fmt.Errorf("chat completion: %w", err)
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("generation API call failed")
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("chat completion returned no choices")
			c.logger.Warn().Int("attempt", attempt).Msg("generation API returned empty response")
			continue
		}

		content := stripCodeFence(strings.TrimSpace(resp.Choices[0].Message.Content))

		article, err := articleschema.ValidateArticlePayload(json.RawMessage(content))
		if err != nil {
			lastErr = fmt.Errorf("invalid article payload: %w", err)
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("generation response failed validation")
			continue
		}

		article.WordCount = len(strings.Fields(article.Body))
		return article, resp.Usage.TotalTokens, nil
	}

	return nil, 0, fmt.Errorf("generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// stripCodeFence removes a surrounding markdown code fence, with or without a
// language tag, from the model output.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	trimmed := strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(trimmed, '\n'); newline >= 0 {
		firstLine := strings.TrimSpace(trimmed[:newline])
		if firstLine == "" || firstLine == "json" {
			trimmed = trimmed[newline+1:]
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
