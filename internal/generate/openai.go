package generate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openaiTemperature = 0.7

// OpenAIGenerator calls the OpenAI Chat Completions API. Alternate backend
// behind the same Generator contract as Gemini.
type OpenAIGenerator struct {
	model  openai.ChatModel
	client *openai.Client
}

func NewOpenAIGenerator(apiKey string, model openai.ChatModel) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIGenerator{model: model, client: &cli}, nil
}

func (g *OpenAIGenerator) Questions(ctx context.Context, text string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	if text == "" {
		return "", fmt.Errorf("text required")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultGenTimeout)
	defer cancel()

	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(questionPrompt),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(text),
				},
			},
		},
	}
	resp, err := g.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    messages,
		Temperature: openai.Float(openaiTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
