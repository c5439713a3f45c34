package transcribe

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/Vovarama1992/whisper_relay/internal/offload"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	rec   *Recognition
	err   error
	calls int

	lastPath  string
	sawStaged bool
}

func (f *fakeRecognizer) Transcribe(_ context.Context, path string) (*Recognition, error) {
	f.calls++
	f.lastPath = path
	_, statErr := os.Stat(path)
	f.sawStaged = statErr == nil
	return f.rec, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func newService(t *testing.T, rec Recognizer, sum Summarizer) *Service {
	t.Helper()
	return NewService(rec, sum, offload.NewExecutor(1))
}

func requireGone(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "staged file %s still exists", path)
}

func TestTranscribeWithoutSummarizer(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{
		Text:     "  hello world  ",
		Language: "en",
		Segments: []Segment{{Start: 0, End: 1.2}},
	}}
	svc := newService(t, rec, nil)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)

	require.Equal(t, "hello world", res.Transcript)
	require.Equal(t, "en", res.Language)
	require.Equal(t, 1.2, res.Duration)
	require.Nil(t, res.Summary)

	require.True(t, rec.sawStaged, "recognizer should see the staged file")
	requireGone(t, rec.lastPath)
}

func TestTranscribeWithSummarizer(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{
		Text:     "hello world",
		Language: "en",
		Segments: []Segment{{Start: 0, End: 1.2}},
	}}
	sum := &fakeSummarizer{summary: "Greeting exchanged."}
	svc := newService(t, rec, sum)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)

	require.NotNil(t, res.Summary)
	require.Equal(t, "Greeting exchanged.", *res.Summary)
	require.Equal(t, 1, sum.calls)
}

func TestSummarizerNeverCalledWhenDisabled(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{Text: "hi", Language: "en"}}
	sum := &fakeSummarizer{summary: "unused"}

	// Configured off: the summarizer exists but is not wired in.
	svc := newService(t, rec, nil)

	_, err := svc.Transcribe(context.Background(), []byte("audio"), "")
	require.NoError(t, err)
	require.Equal(t, 0, sum.calls)
}

func TestSummarizerFailureIsNonFatal(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{
		Text:     "hello world",
		Language: "en",
		Segments: []Segment{{Start: 0, End: 2.5}},
	}}
	sum := &fakeSummarizer{err: errors.New("ollama unreachable")}
	svc := newService(t, rec, sum)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)

	require.Nil(t, res.Summary)
	require.Equal(t, "hello world", res.Transcript)
	require.Equal(t, 2.5, res.Duration)
	requireGone(t, rec.lastPath)
}

// stalledSummarizer blocks until its context is cancelled, so the call is
// still in flight when the caller gives up on it.
type stalledSummarizer struct {
	started chan struct{}
}

func (s *stalledSummarizer) Summarize(ctx context.Context, _ string) (string, error) {
	close(s.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestAbandonedSummarizerIsNonFatal(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{
		Text:     "hello world",
		Language: "en",
		Segments: []Segment{{Start: 0, End: 1.2}},
	}}
	sum := &stalledSummarizer{started: make(chan struct{})}
	svc := newService(t, rec, sum)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sum.started
		cancel()
	}()

	res, err := svc.Transcribe(ctx, []byte("audio"), "voice.ogg")
	require.NoError(t, err)

	require.Nil(t, res.Summary)
	require.Equal(t, "hello world", res.Transcript)
	requireGone(t, rec.lastPath)
}

func TestRecognizerFailureRemovesStagedFile(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("corrupt audio")}
	sum := &fakeSummarizer{summary: "unused"}
	svc := newService(t, rec, sum)

	_, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "transcription failed")
	require.Contains(t, err.Error(), "corrupt audio")

	require.Equal(t, 0, sum.calls, "summarizer must not run after a failed recognition")
	requireGone(t, rec.lastPath)
}

func TestDurationZeroWithoutSegments(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{Text: "hi", Language: "en"}}
	svc := newService(t, rec, nil)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)
	require.Equal(t, 0.0, res.Duration)
}

func TestLanguageDefaultsToUnknown(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{Text: "hi"}}
	svc := newService(t, rec, nil)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)
	require.Equal(t, "unknown", res.Language)
}

func TestEmptyRecognitionYieldsEmptyTranscript(t *testing.T) {
	rec := &fakeRecognizer{rec: &Recognition{}}
	sum := &fakeSummarizer{summary: "unused"}
	svc := newService(t, rec, sum)

	res, err := svc.Transcribe(context.Background(), []byte("audio"), "voice.ogg")
	require.NoError(t, err)

	require.Equal(t, "", res.Transcript)
	require.Equal(t, "unknown", res.Language)
	require.Equal(t, 0.0, res.Duration)
	require.Equal(t, 0, sum.calls, "nothing to summarize in an empty transcript")
}

func TestInferSuffix(t *testing.T) {
	require.Equal(t, ".mp3", inferSuffix("song.mp3"))
	require.Equal(t, ".ogg", inferSuffix("voice"))
	require.Equal(t, ".ogg", inferSuffix(""))
}
