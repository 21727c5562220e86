package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// ClaudeProvider implements the llm.Provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

func (cp *ClaudeProvider) model() anthropic.Model {
	if cp.config.LLM.Model != "" {
		return anthropic.Model(cp.config.LLM.Model)
	}
	return anthropic.ModelClaude3_5HaikuLatest
}

// complete sends a single-message prompt to Claude and returns the text content
func (cp *ClaudeProvider) complete(ctx context.Context, prompt string) (string, error) {
	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model(),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return responseText, nil
}

// ExtractJobInfo extracts structured job fields from an email using Claude
func (cp *ClaudeProvider) ExtractJobInfo(ctx context.Context, input models.ExtractionRequest) (*models.ExtractedJob, error) {
	startTime := time.Now()

	responseText, err := cp.complete(ctx, buildExtractionPrompt(input))
	if err != nil {
		return nil, err
	}

	extracted, err := parseExtractedJob(responseText)
	if err != nil {
		return nil, err
	}

	cp.logger.Debug("Job info extraction completed", map[string]interface{}{
		"provider":        "claude",
		"company":         extracted.Company,
		"position":        extracted.Position,
		"processing_time": time.Since(startTime),
	})

	return extracted, nil
}

// ScoreMatch scores an application against the candidate profile using Claude
func (cp *ClaudeProvider) ScoreMatch(ctx context.Context, rec *models.ApplicationRec, profile models.CandidateProfile) (*models.MatchScore, error) {
	responseText, err := cp.complete(ctx, buildScoringPrompt(rec, profile))
	if err != nil {
		return nil, err
	}

	return parseMatchScore(responseText)
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     cp.model(),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// Name returns the name of the LLM provider
func (cp *ClaudeProvider) Name() string {
	return "claude"
}
