package transcribe

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the remote alternative to the local whisper CLI: same model
// family, served by the OpenAI audio API. The key is validated at config load.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}
}

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Transcribe(ctx context.Context, filePath string) (*Recognition, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: filePath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	rec := &Recognition{
		Text:     resp.Text,
		Language: resp.Language,
	}
	for _, s := range resp.Segments {
		rec.Segments = append(rec.Segments, Segment{Start: s.Start, End: s.End})
	}
	return rec, nil
}
