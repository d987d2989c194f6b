package explain

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// ErrEmptyExplanation is returned when the model produced no usable text.
var ErrEmptyExplanation = errors.New("explain: empty response from model")

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Gemini is an Explainer backed by the official genai client. The API key is
// taken from the environment (GEMINI_API_KEY / GOOGLE_API_KEY) by the client
// itself.
type Gemini struct {
	cli    *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini creates a Gemini explainer for the given model name.
func NewGemini(ctx context.Context, model string, logger *zap.Logger) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{cli: cli, model: model, logger: logger}, nil
}

// Explain sends the request prompt and returns the model's text. Transient
// failures are retried with exponential backoff, three attempts total.
func (g *Gemini) Explain(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt()
	g.logger.Debug("explain request",
		zap.String("entity", req.Name),
		zap.String("model", g.model),
		zap.Int("promptBytes", len(prompt)),
	)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		switch {
		case err != nil:
			lastErr = err
		case len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0:
			lastErr = ErrEmptyExplanation
		default:
			text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
			if text == "" {
				lastErr = ErrEmptyExplanation
				break
			}
			return text, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
		}
	}
	return "", lastErr
}
