package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request carries the user's answers the prompt is built from. The content
// is passed through to the model and never interpreted here.
type Request struct {
	Goal          string `json:"goal"`
	Phase         string `json:"phase"`
	ActivityLevel string `json:"activityLevel"`
	Struggle      string `json:"struggle"`
}

const DefaultModelName = "gemini-1.5-flash"

type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModelName
	}

	return &GeminiGenerator{
		client:    client,
		modelName: modelName,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	model := g.client.GenerativeModel(g.modelName)

	prompt := fmt.Sprintf(
		`You are a fitness coach. Write one short motivational quote (max two sentences) for a person with:
- goal: %s
- training phase: %s
- activity level: %s
- current struggle: %s

Return ONLY the quote text, no attribution, no quotation marks.`,
		req.Goal, req.Phase, req.ActivityLevel, req.Struggle,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected model response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	return strings.TrimSpace(string(text)), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
