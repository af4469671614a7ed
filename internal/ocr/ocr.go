// Package ocr defines the OCR collaborator interface consumed by the receipt
// flow. The engine itself is a black box: it takes an image and produces raw
// text, and may fail as a whole.
package ocr

import "context"

// Recognizer extracts raw text from a receipt image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, mimeType string) (string, error)
	Close() error
}

// Static is a Recognizer returning a fixed text, used in tests and as an
// offline stand-in.
type Static struct {
	Text string
	Err  error
}

func (s Static) Recognize(context.Context, []byte, string) (string, error) {
	return s.Text, s.Err
}

func (Static) Close() error { return nil }
