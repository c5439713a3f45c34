package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const summaryPrompt = `Summarize the following transcript in 2-3 sentences. Reply with the summary only, no preamble.

Transcript:
%s`

// OllamaClient talks to an ollama-style /api/generate endpoint.
type OllamaClient struct {
	url    string
	model  string
	client *http.Client
}

func NewOllamaClient(url, model string) *OllamaClient {
	return &OllamaClient{
		url:    url,
		model:  model,
		client: &http.Client{},
	}
}

func (c *OllamaClient) Model() string { return c.model }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (c *OllamaClient) Summarize(ctx context.Context, text string) (string, error) {
	b, _ := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf(summaryPrompt, text),
		Stream: false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("summary status %d: %s", resp.StatusCode, tail(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}

	summary := strings.TrimSpace(out.Response)
	if summary == "" {
		return "", fmt.Errorf("empty summary response")
	}
	return summary, nil
}
