package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
	"google.golang.org/genai"
)

// implements Client using Google Gemini
type GeminiClient struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (c *GeminiClient) Transcribe(ctx context.Context, video VideoInput) (*TranscriptResult, error) {
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

func (c *GeminiClient) Caption(ctx context.Context, video VideoInput) (*CaptionResult, error) {
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

func (c *GeminiClient) GenerateDocument(
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
		return nil, fmt.Errorf("empty document from Gemini")
	}

	return &doc.Document{Format: format, Content: content}, nil
}

func (c *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list Gemini models: %w", err)
	}

	var models []string
	for _, m := range page.Items {
		models = append(models, strings.TrimPrefix(m.Name, "models/"))
	}
	return models, nil
}

// uploads the video and runs one generation call against it
func (c *GeminiClient) generateWithVideo(
	ctx context.Context,
	video VideoInput,
	model string,
	prompt string,
) (string, error) {
	if _, err := os.Stat(video.Path); os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", video.Path)
	}

	uploadedFile, err := c.client.Files.UploadFromPath(ctx, video.Path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload video file: %w", err)
	}

	defer func() {
		_, _ = c.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	return collectGeminiText(result)
}

func collectGeminiText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("no text in Gemini response")
	}

	return responseText, nil
}
