package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const (
	openAITemperature = 0.2
	openAIMaxTokens   = 400

	summarySystemPrompt = `Summarize the article in a short paragraph
	covering the main points so the reader understands the story
	without opening the page.
	Keep critical context (dates, numbers, names).
	Stay neutral and objective.
	Answer in the same language as the article.`

	completionTimeout = 2 * time.Minute
)

// OpenAIConfig configures the OpenAI-backed backend.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

type openAIClient struct {
	client openai.Client
	model  openai.ChatModel
	poster *http.Client
	logger *zap.Logger
}

// NewOpenAIClient returns a Client that runs chat completions locally and
// delivers the result through the same callback endpoint a remote async
// provider would use, so the completion path does not depend on the backend.
func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) Client {
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4_1Mini
	}
	return &openAIClient{
		client: openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
		poster: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (c *openAIClient) Name() string { return "openai" }

func (c *openAIClient) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", fmt.Errorf("article text is required")
	}

	jobID := uuid.NewString()

	// Completion outlives the originating request, so it runs on its own
	// context rather than ctx.
	go c.complete(jobID, req)

	return jobID, nil
}

func (c *openAIClient) complete(jobID string, req SubmitRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	summary, err := c.summarize(ctx, req)
	if err != nil {
		c.logger.Warn("openai summarization failed",
			zap.String("job_id", jobID), zap.Error(err))
		c.deliver(ctx, req.CallbackURL, callbackPayload{
			JobID:   jobID,
			Outcome: "failed",
			Error:   err.Error(),
		})
		return
	}

	c.deliver(ctx, req.CallbackURL, callbackPayload{
		JobID:   jobID,
		Outcome: "succeeded",
		Output:  summary,
	})
}

func (c *openAIClient) summarize(ctx context.Context, req SubmitRequest) (string, error) {
	prompt := strings.Builder{}
	if headline := strings.TrimSpace(req.Headline); headline != "" {
		prompt.WriteString("Headline: ")
		prompt.WriteString(headline)
		prompt.WriteString("\n")
	}
	prompt.WriteString("Article:\n")
	prompt.WriteString(req.Text)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarySystemPrompt),
			openai.UserMessage(prompt.String()),
		},
		Temperature:         openai.Float(openAITemperature),
		MaxCompletionTokens: openai.Int(openAIMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("failed to do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion choices are missing")
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("chat completion choice message content is missing")
	}
	return summary, nil
}

type callbackPayload struct {
	JobID   string `json:"job_id"`
	Outcome string `json:"outcome"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (c *openAIClient) deliver(ctx context.Context, callbackURL string, payload callbackPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to marshal callback payload",
			zap.String("job_id", payload.JobID), zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callbackURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build callback request",
			zap.String("job_id", payload.JobID), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.poster.Do(req)
	if err != nil {
		c.logger.Error("failed to deliver callback",
			zap.String("job_id", payload.JobID), zap.Error(err))
		return
	}
	resp.Body.Close()
}
