package providers

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// OpenAIProvider implements the llm.Provider interface against any
// OpenAI-compatible chat-completions endpoint.
type OpenAIProvider struct {
	client   *resty.Client
	config   *config.Config
	endpoint string
	logger   logging.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIProvider creates a new OpenAI-compatible provider instance
func NewOpenAIProvider(cfg *config.Config) *OpenAIProvider {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.LLM.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(cfg.LLM.Timeout)

	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIProvider{
		client:   client,
		config:   cfg,
		endpoint: baseURL + "/chat/completions",
		logger:   logging.GetGlobalLogger(),
	}
}

func (op *OpenAIProvider) model() string {
	if op.config.LLM.Model != "" {
		return op.config.LLM.Model
	}
	return "gpt-4o-mini"
}

// complete sends a single-message prompt and returns the text content
func (op *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:       op.model(),
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: op.config.LLM.Temperature,
		MaxTokens:   op.config.LLM.MaxTokens,
	}

	var result chatResponse
	resp, err := op.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post(op.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call chat completions API: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("chat completions API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from chat completions API")
	}

	return result.Choices[0].Message.Content, nil
}

// ExtractJobInfo extracts structured job fields from an email
func (op *OpenAIProvider) ExtractJobInfo(ctx context.Context, input models.ExtractionRequest) (*models.ExtractedJob, error) {
	responseText, err := op.complete(ctx, buildExtractionPrompt(input))
	if err != nil {
		return nil, err
	}

	return parseExtractedJob(responseText)
}

// ScoreMatch scores an application against the candidate profile
func (op *OpenAIProvider) ScoreMatch(ctx context.Context, rec *models.ApplicationRec, profile models.CandidateProfile) (*models.MatchScore, error) {
	responseText, err := op.complete(ctx, buildScoringPrompt(rec, profile))
	if err != nil {
		return nil, err
	}

	return parseMatchScore(responseText)
}

// IsHealthy checks if the provider is configured and reachable
func (op *OpenAIProvider) IsHealthy(ctx context.Context) error {
	if op.config.LLM.APIKey == "" {
		return fmt.Errorf("API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := op.complete(ctx, "Hello")
	if err != nil {
		return fmt.Errorf("chat completions health check failed: %w", err)
	}

	return nil
}

// Name returns the name of the LLM provider
func (op *OpenAIProvider) Name() string {
	return "openai"
}
