package advice

import (
	"context"
	"log/slog"

	"google.golang.org/genai"
)

// GeminiGateway calls the Gemini API for financial insights. One attempt per
// request, no retries; any failure is replaced by a fixed fallback message.
type GeminiGateway struct {
	apiKey string
	model  string
}

func NewGeminiGateway(apiKey, model string) *GeminiGateway {
	return &GeminiGateway{apiKey: apiKey, model: model}
}

// RequestAdvice sends the snapshot analysis prompt. An absent API key is an
// expected deployment state and yields an explanatory message rather than an
// error; transport or response failures yield the unavailable message.
func (g *GeminiGateway) RequestAdvice(ctx context.Context, snap Snapshot) (string, error) {
	if g.apiKey == "" {
		slog.WarnContext(ctx, "Advice requested without API key configured")
		return MsgMissingAPIKey, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		slog.ErrorContext(ctx, "Gemini client init failed", "error", err)
		return MsgUnavailable, nil
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       genai.Ptr[float32](0.8),
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(snap)), cfg)
	if err != nil {
		slog.ErrorContext(ctx, "Gemini generate failed", "error", err, "model", g.model)
		return MsgUnavailable, nil
	}
	text := resp.Text()
	if text == "" {
		slog.ErrorContext(ctx, "Gemini returned an empty response", "model", g.model)
		return MsgUnavailable, nil
	}
	return text, nil
}
