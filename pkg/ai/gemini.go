package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/studybuddy-team/study-buddy/pkg/config"
)

// GeminiClient wraps the Gemini SDK for study-material generation. All
// prompts request JSON output; response cleanup lives with the caller since
// models occasionally wrap payloads in markdown fences anyway.
type GeminiClient struct {
	model     *genai.GenerativeModel
	modelName string
	sdk       *genai.Client
}

// NewGeminiClient creates a Gemini client from config.
func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini SDK client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	model := sdk.GenerativeModel(modelName)
	var genCfg genai.GenerationConfig
	genCfg.ResponseMIMEType = "application/json"
	model.GenerationConfig = genCfg

	return &GeminiClient{
		model:     model,
		modelName: modelName,
		sdk:       sdk,
	}, nil
}

// ModelName returns the configured model identifier.
func (g *GeminiClient) ModelName() string {
	return g.modelName
}

// Close releases the underlying SDK client.
func (g *GeminiClient) Close() error {
	return g.sdk.Close()
}

// Generate sends a prompt and returns the raw text of the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt must not be empty")
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		if candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != genai.FinishReasonUnspecified {
			return "", fmt.Errorf("gemini response blocked: %s", candidate.FinishReason.String())
		}
		return "", fmt.Errorf("gemini response has no content parts")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return out, nil
}
