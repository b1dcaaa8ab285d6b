// Package ocr turns receipt images into raw text and a line-split view of it.
package ocr

import "context"

// Engine defines the interface for text recognition.
//
// Recognize never fails across this boundary: any internal error is logged
// and surfaces as ("", nil), so the extraction pipeline downstream never sees
// a partial result.
type Engine interface {
	Recognize(ctx context.Context, imageData []byte, contentType string) (fullText string, lines []string)
}
