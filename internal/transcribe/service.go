package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vovarama1992/whisper_relay/internal/offload"
	"github.com/google/uuid"
)

const defaultSuffix = ".ogg"

const summaryTimeout = 120 * time.Second

// ErrStaging is returned when the inbound audio cannot be written to disk.
// Deliberately carries no path or OS detail.
var ErrStaging = errors.New("failed to store audio")

// Result is the response for one transcription request.
type Result struct {
	Transcript string  `json:"transcript"`
	Summary    *string `json:"summary"`
	Language   string  `json:"language"`
	Duration   float64 `json:"duration"`
}

// Service runs the per-request pipeline: stage audio to a temp file, recognize
// it on the offload pool, optionally summarize, and always remove the staged
// file before returning.
type Service struct {
	recognizer Recognizer
	summarizer Summarizer // nil → summarization disabled
	executor   *offload.Executor
}

func NewService(rec Recognizer, sum Summarizer, exec *offload.Executor) *Service {
	return &Service{
		recognizer: rec,
		summarizer: sum,
		executor:   exec,
	}
}

func (s *Service) Transcribe(ctx context.Context, data []byte, filename string) (*Result, error) {
	start := time.Now()

	path, err := s.stage(data, filename)
	if err != nil {
		log.Printf("[transcribe] stage fail: %v", err)
		return nil, ErrStaging
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("[transcribe] remove staged file fail: %v", err)
		}
	}()

	var rec *Recognition
	var recErr error
	err = s.executor.Run(ctx, func() {
		rec, recErr = s.recognizer.Transcribe(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	if recErr != nil {
		log.Printf("[transcribe][%.1fs] recognize fail: %v", time.Since(start).Seconds(), recErr)
		return nil, fmt.Errorf("transcription failed: %s", recErr)
	}

	result := &Result{
		Transcript: strings.TrimSpace(rec.Text),
		Language:   rec.Language,
		Duration:   lastSegmentEnd(rec.Segments),
	}
	if result.Language == "" {
		result.Language = "unknown"
	}

	if s.summarizer != nil && result.Transcript != "" {
		if summary, ok := s.summarize(ctx, result.Transcript); ok {
			result.Summary = &summary
		}
	}

	log.Printf("[transcribe][%.1fs] done lang=%s dur=%.1fs summary=%t",
		time.Since(start).Seconds(), result.Language, result.Duration, result.Summary != nil)

	return result, nil
}

// summarize is best-effort: every failure is logged and downgraded to "no
// summary", it never fails the request.
func (s *Service) summarize(ctx context.Context, transcript string) (string, bool) {
	ctxSum, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	var summary string
	var sumErr error
	err := s.executor.Run(ctxSum, func() {
		summary, sumErr = s.summarizer.Summarize(ctxSum, transcript)
	})
	if err != nil {
		// Abandoned task: it still owns summary/sumErr, do not read them.
		log.Printf("[transcribe] summary fail: %v", err)
		return "", false
	}
	if sumErr != nil {
		log.Printf("[transcribe] summary fail: %v", sumErr)
		return "", false
	}
	return summary, true
}

func (s *Service) stage(data []byte, filename string) (string, error) {
	path := filepath.Join(os.TempDir(), "upload-"+uuid.NewString()+inferSuffix(filename))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func inferSuffix(filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return defaultSuffix
}

// lastSegmentEnd mirrors the documented duration contract: the end of the last
// segment, 0 when the model reported none. Known to understate real audio
// length when the model drops trailing silence.
func lastSegmentEnd(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0.0
	}
	return segments[len(segments)-1].End
}
