package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/b08x/ScreenDoc/internal/doc"
)

// implements Client using Anthropic Claude. The API takes no video input, so
// this provider only serves document generation from an existing transcript;
// transcription and captioning must run on a video-capable provider first.
type AnthropicClient struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicClient(ctx context.Context, apiKey string, opts Options) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeSonnet4_5
	}

	return &AnthropicClient{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (c *AnthropicClient) Transcribe(ctx context.Context, video VideoInput) (*TranscriptResult, error) {
	return nil, fmt.Errorf("provider anthropic does not accept video input; transcribe with a video-capable provider")
}

func (c *AnthropicClient) Caption(ctx context.Context, video VideoInput) (*CaptionResult, error) {
	return nil, fmt.Errorf("%w: provider anthropic does not accept video input", ErrCaptionStage)
}

func (c *AnthropicClient) GenerateDocument(
	ctx context.Context,
	video VideoInput,
	format doc.Format,
	transcript []doc.Segment,
) (*doc.Document, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("anthropic document generation requires a transcript")
	}

	prompt := BuildDocumentPrompt(format, transcript, c.options.UserContext)

	model := c.model
	if c.options.DocModel != "" {
		model = anthropic.Model(c.options.DocModel)
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("document generation failed: %w", err)
	}

	responseText, err := collectAnthropicText(message)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(responseText)
	if format == doc.FormatDiagram {
		content = cleanJSONResponse(content)
	}

	return &doc.Document{Format: format, Content: content}, nil
}

func (c *AnthropicClient) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Anthropic models: %w", err)
	}

	var models []string
	for _, m := range page.Data {
		models = append(models, string(m.ID))
	}
	return models, nil
}

func collectAnthropicText(message *anthropic.Message) (string, error) {
	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text in Anthropic response")
	}

	return responseText, nil
}
