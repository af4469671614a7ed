package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const recognizeTimeout = 30 * time.Second

// transcribePrompt asks for a verbatim transcription: all interpretation of
// the text happens in the local extractors, never in the model.
const transcribePrompt = `Transcribe todo el texto visible en esta imagen de ticket o recibo,
exactamente como está impreso, una línea de salida por línea impresa.
Respondé únicamente con el texto crudo, sin comentarios ni formato.`

// Gemini implements Recognizer using the Gemini vision API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini-backed recognizer.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Recognize sends the image and returns the transcribed raw text.
func (g *Gemini) Recognize(ctx context.Context, image []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, recognizeTimeout)
	defer cancel()

	// genai.ImageData wants the format suffix, not the full MIME type.
	format := strings.TrimPrefix(mimeType, "image/")
	if format == mimeType || format == "" {
		format = "jpeg"
	}

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData(format, image),
		genai.Text(transcribePrompt),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
