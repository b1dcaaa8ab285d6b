package ocr

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tesseract implements the Engine interface by shelling out to the
// tesseract binary.
type Tesseract struct {
	binary string
}

// NewTesseract creates a new Tesseract Engine instance. An empty binary path
// resolves "tesseract" from PATH.
func NewTesseract(binary string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	return &Tesseract{binary: binary}
}

// Recognize converts the image to PNG, runs tesseract on it, and returns the
// recognized text plus its trimmed, non-empty lines. Any failure is logged
// and yields ("", nil).
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte, contentType string) (string, []string) {
	pngData, err := preparePNG(imageData, contentType)
	if err != nil {
		slog.Error("Failed to prepare image for OCR", "content_type", contentType, "error", err)
		return "", nil
	}

	tmp, err := os.CreateTemp("", "eco-scan-*.png")
	if err != nil {
		slog.Error("Failed to create temp file for OCR", "error", err)
		return "", nil
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(pngData); err != nil {
		tmp.Close()
		slog.Error("Failed to write temp file for OCR", "error", err)
		return "", nil
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, t.binary, tmp.Name(), "stdout")
	out, err := cmd.Output()
	if err != nil {
		slog.Error("Tesseract failed", "binary", filepath.Base(t.binary), "error", err)
		return "", nil
	}

	return splitLines(string(out))
}

// splitLines drops blank lines and surrounding whitespace, and rejoins the
// survivors as the canonical full text.
func splitLines(raw string) (string, []string) {
	var lines []string
	for _, ln := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n"), lines
}
