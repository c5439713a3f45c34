package main

import (
	"log"

	"github.com/Vovarama1992/whisper_relay/internal/apiclient"
	"github.com/Vovarama1992/whisper_relay/internal/config"
	"github.com/Vovarama1992/whisper_relay/internal/telegram"
)

func main() {
	cfg := config.LoadBot()

	api := apiclient.New(cfg.APIURL)

	app, err := telegram.NewBotApp(cfg.Token, api)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}

	log.Printf("[bot] relaying voice messages to %s", cfg.APIURL)
	app.Run()
}
