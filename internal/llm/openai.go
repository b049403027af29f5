package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Client against any OpenAI-compatible chat API. OpenAI itself,
// Mistral, OpenRouter, and self-hosted Ollama all ride this shape with
// different base URLs.
type OpenAIClient struct {
	client   openai.Client
	provider Provider
	model    string
	options  Options
}

var compatibleDefaultModels = map[Provider]string{
	ProviderOpenAI:     "gpt-4o",
	ProviderMistral:    "pixtral-large-latest",
	ProviderOpenRouter: "google/gemini-2.5-flash",
	ProviderOllama:     "llama3.2-vision",
}

func NewOpenAIClient(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (*OpenAIClient, error) {
	// Ollama serves locally without authentication
	if apiKey == "" && provider != ProviderOllama {
		return nil, fmt.Errorf("API key is required")
	}

	requestOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}
	client := openai.NewClient(requestOpts...)

	model := opts.Model
	if model == "" {
		model = compatibleDefaultModels[provider]
	}

	return &OpenAIClient{
		client:   client,
		provider: provider,
		model:    model,
		options:  opts,
	}, nil
}

func (c *OpenAIClient) Transcribe(ctx context.Context, video VideoInput) (*TranscriptResult, error) {
	responseText, err := c.generateWithVideo(ctx, video, c.model, BuildTranscriptPrompt(c.options.UserContext))
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	segments, err := extractTranscript(cleanJSONResponse(responseText))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse transcript: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	return &TranscriptResult{Transcript: segments}, nil
}

func (c *OpenAIClient) Caption(ctx context.Context, video VideoInput) (*CaptionResult, error) {
	model := stageModel(c.options.CaptionModel, c.model)
	responseText, err := c.generateWithVideo(ctx, video, model, BuildCaptionPrompt(c.options.UserContext))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptionStage, err)
	}

	captions, err := extractCaptions(cleanJSONResponse(responseText))
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %w (response: %s)",
			ErrCaptionStage,
			err,
			truncateString(responseText, 200),
		)
	}

	return &CaptionResult{Timecodes: captions}, nil
}

func (c *OpenAIClient) GenerateDocument(
	ctx context.Context,
	video VideoInput,
	format doc.Format,
	transcript []doc.Segment,
) (*doc.Document, error) {
	prompt := BuildDocumentPrompt(format, transcript, c.options.UserContext)

	model := stageModel(c.options.DocModel, c.model)
	responseText, err := c.generateWithVideo(ctx, video, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("document generation failed: %w", err)
	}

	content := strings.TrimSpace(responseText)
	if format == doc.FormatDiagram {
		content = cleanJSONResponse(content)
	}
	if content == "" {
		return nil, fmt.Errorf("empty document from %s", c.provider)
	}

	return &doc.Document{Format: format, Content: content}, nil
}

func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s models: %w", c.provider, err)
	}

	var models []string
	for _, m := range page.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

// sends the prompt plus the video, inlined as a base64 file part, through
// one chat completion
func (c *OpenAIClient) generateWithVideo(
	ctx context.Context,
	video VideoInput,
	model string,
	prompt string,
) (string, error) {
	data := video.Data
	if len(data) == 0 {
		loaded, err := os.ReadFile(video.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read video file: %w", err)
		}
		data = loaded
	}

	dataURL := fmt.Sprintf(
		"data:%s;base64,%s",
		video.MIMEType,
		base64.StdEncoding.EncodeToString(data),
	)

	parts := []openai.ChatCompletionContentPartUnionParam{
		{
			OfText: &openai.ChatCompletionContentPartTextParam{Text: prompt},
		},
		{
			OfFile: &openai.ChatCompletionContentPartFileParam{
				File: openai.ChatCompletionContentPartFileFileParam{
					FileData: openai.String(dataURL),
					Filename: openai.String(filepath.Base(video.Path)),
				},
			},
		},
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: parts,
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.provider)
	}

	responseText := completion.Choices[0].Message.Content
	if responseText == "" {
		return "", fmt.Errorf("no text in %s response", c.provider)
	}

	return responseText, nil
}
