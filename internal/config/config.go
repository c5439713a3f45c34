package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// APIConfig is the transcription service configuration. Built once in main,
// never mutated afterwards.
type APIConfig struct {
	Port         string
	STTBackend   string // "local" | "openai"
	WhisperModel string
	WhisperBin   string
	OpenAIAPIKey string // required when STTBackend is "openai"
	StaticDir    string

	// SummaryAPIURL empty → summarization disabled.
	SummaryAPIURL string
	SummaryModel  string

	OffloadWorkers int
}

// BotConfig is the Telegram gateway configuration.
type BotConfig struct {
	Token  string
	APIURL string
}

func LoadAPI() APIConfig {
	_ = godotenv.Load()

	cfg := APIConfig{
		Port:           getenv("PORT", "8000"),
		STTBackend:     getenv("STT_BACKEND", "local"),
		WhisperModel:   getenv("WHISPER_MODEL", "base"),
		WhisperBin:     getenv("WHISPER_BIN", "whisper"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		StaticDir:      getenv("STATIC_DIR", "static"),
		SummaryAPIURL:  os.Getenv("SUMMARY_API_URL"),
		SummaryModel:   getenv("SUMMARY_MODEL", "llama3.2"),
		OffloadWorkers: getenvInt("OFFLOAD_WORKERS", 2),
	}

	if cfg.STTBackend == "openai" && cfg.OpenAIAPIKey == "" {
		log.Fatal("STT_BACKEND=openai requires OPENAI_API_KEY")
	}

	return cfg
}

func LoadBot() BotConfig {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_TOKEN is not set")
	}

	return BotConfig{
		Token:  token,
		APIURL: getenv("WHISPER_API_URL", "http://whisper-api:8000/transcribe"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("[config] bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
