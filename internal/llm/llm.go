package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/b08x/ScreenDoc/internal/doc"
)

// ErrCaptionStage marks a failure in the caption-generation stage so callers
// can offer retrying just that stage without redoing transcription.
var ErrCaptionStage = errors.New("caption generation failed")

// video handed to a provider
type VideoInput struct {
	Path     string
	MIMEType string
	Data     []byte // inline bytes for providers without a file upload API
}

// diarized transcript returned by a provider
type TranscriptResult struct {
	Transcript []doc.Segment
}

// timecoded captions returned by a provider
type CaptionResult struct {
	Timecodes []doc.Caption
}

// Client is the boundary to one hosted LLM provider. Every call either
// returns a fully validated result or an error, never a partial record.
type Client interface {
	Transcribe(ctx context.Context, video VideoInput) (*TranscriptResult, error)
	Caption(ctx context.Context, video VideoInput) (*CaptionResult, error)
	GenerateDocument(
		ctx context.Context,
		video VideoInput,
		format doc.Format,
		transcript []doc.Segment,
	) (*doc.Document, error)
	ListModels(ctx context.Context) ([]string, error)
}

// hosted LLM provider
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenAI     Provider = "openai"
	ProviderAnthropic  Provider = "anthropic"
	ProviderMistral    Provider = "mistral"
	ProviderOpenRouter Provider = "openrouter"
	ProviderOllama     Provider = "ollama"
)

// ParseProvider maps a user supplied provider name to a Provider.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(s) {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic,
		ProviderMistral, ProviderOpenRouter, ProviderOllama:
		return Provider(s), true
	default:
		return "", false
	}
}

type Options struct {
	Model        string
	CaptionModel string // overrides Model for the captioning stage
	DocModel     string // overrides Model for document generation
	BaseURL      string // self-hosted / OpenAI-compatible endpoints
	UserContext  doc.UserContext
}

func stageModel(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// default OpenAI-compatible endpoints for providers that ride that API shape
var compatibleBaseURLs = map[Provider]string{
	ProviderMistral:    "https://api.mistral.ai/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderOllama:     "http://localhost:11434/v1",
}

// Factory creates a Client for the given provider. Mistral, OpenRouter, and
// Ollama use the OpenAI-compatible client with their own base URLs.
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Client, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicClient(ctx, apiKey, opts)
	case ProviderOpenAI, ProviderMistral, ProviderOpenRouter, ProviderOllama:
		if opts.BaseURL == "" {
			opts.BaseURL = compatibleBaseURLs[provider]
		}
		return NewOpenAIClient(ctx, provider, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
