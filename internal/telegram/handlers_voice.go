package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/whisper_relay/internal/apiclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

func (app *BotApp) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	fileID, suffix, ok := mediaRef(msg)
	if !ok {
		return
	}

	log.Printf("[voice] start chatID=%d fileID=%s", chatID, fileID)

	// Provisional reply so the user is not left waiting silently. Not awaited.
	go app.reply(chatID, "⏳ Transcribing...")

	path := filepath.Join(os.TempDir(), "voice-"+uuid.NewString()+suffix)
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[voice] remove tmp fail: %v", err)
		}
	}()

	if err := app.download(ctx, fileID, path); err != nil {
		log.Printf("[voice] download fail chatID=%d err=%v", chatID, err)
		app.reply(chatID, fmt.Sprintf("❌ Something went wrong: %v", err))
		return
	}

	res, err := app.api.Transcribe(ctx, path)
	if err != nil {
		var statusErr *apiclient.StatusError
		if errors.As(err, &statusErr) {
			log.Printf("[voice] api error chatID=%d status=%d body=%s",
				chatID, statusErr.Code, statusErr.Body)
			app.reply(chatID, fmt.Sprintf("❌ API error: %d", statusErr.Code))
			return
		}
		log.Printf("[voice] relay fail chatID=%d err=%v", chatID, err)
		app.reply(chatID, fmt.Sprintf("❌ Something went wrong: %v", err))
		return
	}

	if strings.TrimSpace(res.Transcript) == "" {
		log.Printf("[voice] no speech chatID=%d", chatID)
		app.reply(chatID, "⚠️ Couldn't detect any speech in the audio.")
		return
	}

	out := tgbotapi.NewMessage(chatID, formatResult(res))
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := app.chat.Send(out); err != nil {
		log.Printf("[voice] send fail chatID=%d err=%v", chatID, err)
	}

	log.Printf("[voice] done chatID=%d", chatID)
}

func (app *BotApp) download(ctx context.Context, fileID, path string) error {
	url, err := app.chat.FileLink(fileID)
	if err != nil {
		return fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := app.http.Do(req)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("save tmp: %w", err)
	}
	return out.Close()
}

// mediaRef picks the downloadable media out of a message: voice notes are ogg,
// generic audio is assumed mp3. Anything else is ignored.
func mediaRef(msg *tgbotapi.Message) (fileID, suffix string, ok bool) {
	switch {
	case msg.Voice != nil:
		return msg.Voice.FileID, ".ogg", true
	case msg.Audio != nil:
		return msg.Audio.FileID, ".mp3", true
	}
	return "", "", false
}

func formatResult(res *apiclient.Result) string {
	text := fmt.Sprintf("📝 *Transcript* (_%s_, %.1fs):\n\n%s",
		res.Language, res.Duration, res.Transcript)

	if res.Summary != nil && strings.TrimSpace(*res.Summary) != "" {
		text += "\n\n💡 *Summary:*\n" + strings.TrimSpace(*res.Summary)
	}
	return text
}
