package telegram

import (
	"context"
	"log"
	"net/http"

	"github.com/Vovarama1992/whisper_relay/internal/apiclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotApp struct {
	bot  *tgbotapi.BotAPI
	chat ChatAPI
	api  TranscriptionAPI
	http *http.Client
}

func NewBotApp(token string, api *apiclient.Client) (*BotApp, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("[bot_app] ready: @%s", bot.Self.UserName)

	app := newBotApp(&botChatAPI{bot: bot}, api, http.DefaultClient)
	app.bot = bot
	return app, nil
}

func newBotApp(chat ChatAPI, api TranscriptionAPI, client *http.Client) *BotApp {
	return &BotApp{
		chat: chat,
		api:  api,
		http: client,
	}
}

// Run is the main update loop. Each update is handled on its own goroutine so
// one long transcription does not block the others.
func (app *BotApp) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := app.bot.GetUpdatesChan(u)
	log.Printf("[bot_loop] started @%s", app.bot.Self.UserName)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		go app.handleMessage(context.Background(), update.Message)
	}
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		app.handleStart(msg)
	case msg.Voice != nil || msg.Audio != nil:
		app.handleVoice(ctx, msg)
	}
}

func (app *BotApp) reply(chatID int64, text string) {
	if _, err := app.chat.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("[bot_app] send fail chatID=%d err=%v", chatID, err)
	}
}
