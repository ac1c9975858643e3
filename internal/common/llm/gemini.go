package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
)

const DefaultModel = "gemini-2.5-flash"

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for proxies and tests
	Client  *http.Client
}

// GeminiBackend calls the Gemini API through the genai SDK. One instance is
// created at startup and shared.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

func NewGeminiBackend(ctx context.Context, cfg GeminiConfig) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewGenAIConfigMissingError(ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	if cfg.Client != nil {
		cc.HTTPClient = cfg.Client
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiBackend{client: client, model: cfg.Model}, nil
}

func (b *GeminiBackend) Model() string { return b.model }

// Generate sends the prompt as a single user turn. A reply without text
// comes back as "".
func (b *GeminiBackend) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(params.Temperature),
		MaxOutputTokens: params.MaxOutputTokens,
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", classifyGeminiError(ctx, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func classifyGeminiError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewGenAITimeoutError(err)
	}

	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewGenAIAuthFailedError(err).WithMetadata("status", code)
	case http.StatusTooManyRequests:
		return apperrors.NewGenAIQuotaExceededError(err).WithMetadata("status", code)
	case http.StatusGatewayTimeout:
		return apperrors.NewGenAITimeoutError(err).WithMetadata("status", code)
	case 0:
		return apperrors.NewGenAIRequestFailedError(err)
	default:
		return apperrors.NewGenAIRequestFailedError(err).WithMetadata("status", code)
	}
}
