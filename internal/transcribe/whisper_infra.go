package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WhisperClient runs the local whisper CLI and reads back the JSON file it
// writes next to the audio.
type WhisperClient struct {
	bin   string
	model string
}

func NewWhisperClient(bin, model string) *WhisperClient {
	if bin == "" {
		bin = "whisper"
	}
	return &WhisperClient{bin: bin, model: model}
}

func (c *WhisperClient) Model() string { return c.model }

type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, filePath string) (*Recognition, error) {
	outDir, err := os.MkdirTemp("", "whisper-out-*")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, c.bin,
		filePath,
		"--model", c.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--verbose", "False",
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("whisper failed: %s", tail(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode whisper output: %w", err)
	}

	rec := &Recognition{
		Text:     parsed.Text,
		Language: parsed.Language,
	}
	for _, s := range parsed.Segments {
		rec.Segments = append(rec.Segments, Segment{Start: s.Start, End: s.End})
	}
	return rec, nil
}

// tail keeps error output short enough to log and return.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " | ")
}
