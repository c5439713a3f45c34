package transcribe

import "context"

// Segment is one recognized span of speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Recognition is the raw output of a speech model for one audio file.
type Recognition struct {
	Text     string
	Language string
	Segments []Segment
}

type Recognizer interface {
	Transcribe(ctx context.Context, filePath string) (*Recognition, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
