package generate

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	defaultGenTimeout  = 30 * time.Second
	geminiTemperature  = 0.7
	geminiTopK         = 40
	geminiTopP         = 0.95
)

// GeminiGenerator calls the Gemini API through the GenAI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Questions(ctx context.Context, text string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("nil gemini client")
	}
	if text == "" {
		return "", fmt.Errorf("text required")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultGenTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(questionPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](geminiTemperature),
		TopK:              genai.Ptr[float32](geminiTopK),
		TopP:              genai.Ptr[float32](geminiTopP),
	}
	result, err := g.client.Models.GenerateContent(reqCtx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	out := result.Text()
	if out == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return out, nil
}
