package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/extraction"
)

// HTTPClassifier implements the Classifier interface against a
// text-classification inference server that accepts a batch of inputs and
// returns one {label, score} prediction per input.
type HTTPClassifier struct {
	baseURL    string
	threshold  float64
	normalizer *extraction.Normalizer
	client     *http.Client
}

// NewHTTPClassifier creates a new HTTPClassifier instance. Nil normalizer
// falls back to the default; threshold <= 0 falls back to DefaultThreshold.
func NewHTTPClassifier(baseURL string, threshold float64, normalizer *extraction.Normalizer) (*HTTPClassifier, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("classifier base url is required")
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if normalizer == nil {
		normalizer = extraction.NewNormalizer()
	}

	return &HTTPClassifier{
		baseURL:    baseURL,
		threshold:  threshold,
		normalizer: normalizer,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type classifyRequest struct {
	Inputs []string `json:"inputs"`
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify normalizes the lines with the shared receipt normalizer (matching
// what the model saw at training time), posts them to the inference server,
// and folds low-confidence or unknown labels to LabelOther. Records come
// back in input order.
func (c *HTTPClassifier) Classify(ctx context.Context, lines []string) ([]Record, error) {
	if len(lines) == 0 {
		return []Record{}, nil
	}

	cleaned := make([]string, 0, len(lines))
	for _, ln := range lines {
		cleaned = append(cleaned, c.normalizer.Normalize(ln))
	}

	jsonData, err := json.Marshal(classifyRequest{Inputs: cleaned})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/classify", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classifier API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("classifier API error (status %d): %s", resp.StatusCode, string(body))
	}

	var predictions []prediction
	if err := json.NewDecoder(resp.Body).Decode(&predictions); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(predictions) != len(lines) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d lines", len(predictions), len(lines))
	}

	records := make([]Record, 0, len(lines))
	for i, p := range predictions {
		label := p.Label
		if p.Score < c.threshold || !knownLabel(label) {
			label = LabelOther
		}
		records = append(records, Record{
			Line:       lines[i],
			Clean:      cleaned[i],
			Category:   label,
			Confidence: p.Score,
		})
	}
	return records, nil
}
