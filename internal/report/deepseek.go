package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DeepSeek implements the Generator interface against an OpenAI-compatible
// chat-completions API. The default base URL is the Hugging Face inference
// router, which fronts DeepSeek-V3.
type DeepSeek struct {
	baseURL string
	model   string
	token   string
	client  *http.Client
}

// NewDeepSeek creates a new DeepSeek Generator instance.
func NewDeepSeek(token, baseURL, modelName string) (*DeepSeek, error) {
	if token == "" {
		return nil, fmt.Errorf("api token is required")
	}
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1"
	}
	if modelName == "" {
		modelName = "deepseek-ai/DeepSeek-V3"
	}

	return &DeepSeek{
		baseURL: baseURL,
		model:   modelName,
		token:   token,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateReport sends the receipt text to the chat-completions API and
// returns the model's raw reply.
func (d *DeepSeek) GenerateReport(ctx context.Context, rawText string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: d.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(rawText)},
		},
		MaxTokens:   800,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completions API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completions response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Close closes the DeepSeek client (no-op for HTTP client)
func (d *DeepSeek) Close() error {
	return nil
}
