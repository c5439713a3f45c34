package telegram

import (
	"context"

	"github.com/Vovarama1992/whisper_relay/internal/apiclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatAPI is the slice of the Telegram bot API the handlers use.
type ChatAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	FileLink(fileID string) (string, error)
}

// TranscriptionAPI is the transcription service seen from the gateway.
type TranscriptionAPI interface {
	Transcribe(ctx context.Context, filePath string) (*apiclient.Result, error)
}

type botChatAPI struct {
	bot *tgbotapi.BotAPI
}

func (c *botChatAPI) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.bot.Send(msg)
}

func (c *botChatAPI) FileLink(fileID string) (string, error) {
	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", err
	}
	return file.Link(c.bot.Token), nil
}
