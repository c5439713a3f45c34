package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleStart(msg *tgbotapi.Message) {
	app.reply(msg.Chat.ID, "👋 Send me a voice message and I'll transcribe it for you!")
}
