package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxAttempts bounds the call-and-parse loop: one initial attempt plus one
// retry on a model error or malformed response.
const maxAttempts = 2

// newClient builds a langchaingo model client against an OpenAI-compatible
// chat API.
func newClient(host, apiKey, model string) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(host),
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
}

var errNoChoices = errors.New("model returned no choices")

// generateJSON sends one system+user exchange in JSON mode at temperature 0
// and returns the cleaned-up response text: markdown code fences stripped
// and common JSON damage repaired. Parsing is the caller's job.
func generateJSON(ctx context.Context, client llms.Model, systemPrompt, userPayload string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPayload),
			},
		},
	}

	response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errNoChoices
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	return repairJSON(responseText), nil
}
