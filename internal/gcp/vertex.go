package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// --- Transcriber Model Prompts ---
const TranscriberSystemPrompt = "You are a document transcriber. Your task is to transcribe the content of a scanned Brazilian administrative memorandum (PDF) into plain text. Transcribe the Portuguese wording exactly as written; accuracy and completeness matter more than presentation."
const TranscriberUserPrompt = `You will be provided with a scanned "ordem de serviço" memorandum as a PDF.

Transcribe its full textual content into plain text, following these rules:

1. Preserve the original Portuguese wording character for character, including codes (e.g. CAV12, PMF-301), plates, monetary values and dates.
2. Keep the running text order of the letter: dateline, salutation, body, closing.
3. Do not summarize, translate, interpret or annotate anything.
4. Ignore stamps, signatures, logos and page numbers.

Return ONLY the transcribed text, without any preamble or code fences.`

// VertexClient holds the pre-configured generative model used to
// transcribe scanned memos that arrive without extracted text.
type VertexClient struct {
	TranscriberModel *genai.GenerativeModel
	baseClient       *genai.Client
}

// NewVertexClient creates a new client holding the transcription model.
func NewVertexClient(ctx context.Context, projectID, region string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	transcriberModel := baseClient.GenerativeModel("gemini-1.5-pro")
	transcriberModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(TranscriberSystemPrompt)},
	}
	transcriberModel.GenerationConfig = genai.GenerationConfig{
		// Low temp: transcription must be deterministic, not creative.
		Temperature: genai.Ptr[float32](0.0),
	}

	return &VertexClient{
		TranscriberModel: transcriberModel,
		baseClient:       baseClient,
	}, nil
}

// Transcribe sends a GCS-hosted PDF to the transcription model and returns
// the plain-text content.
func (c *VertexClient) Transcribe(ctx context.Context, gcsURI string) (string, error) {
	prompt := genai.Text(TranscriberUserPrompt)
	filePart := genai.FileData{
		MIMEType: "application/pdf",
		FileURI:  gcsURI,
	}

	resp, err := c.TranscriberModel.GenerateContent(ctx, filePart, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe %s: %w", gcsURI, err)
	}
	return extractText(resp), nil
}

// extractText robustly pulls the text content out of a model response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var contentBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			contentBuilder.WriteString(string(txt))
		}
	}

	content := strings.TrimSpace(contentBuilder.String())
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
