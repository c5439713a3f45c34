package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/whisper_relay/internal/config"
	"github.com/Vovarama1992/whisper_relay/internal/delivery"
	"github.com/Vovarama1992/whisper_relay/internal/offload"
	"github.com/Vovarama1992/whisper_relay/internal/transcribe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg := config.LoadAPI()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// RECOGNIZER / SUMMARIZER
	// =========================================================================

	var recognizer transcribe.Recognizer
	model := cfg.WhisperModel

	switch cfg.STTBackend {
	case "openai":
		client := transcribe.NewOpenAIClient(cfg.OpenAIAPIKey)
		recognizer = client
		model = client.Model()
	default:
		recognizer = transcribe.NewWhisperClient(cfg.WhisperBin, cfg.WhisperModel)
	}

	log.Printf("[api] model ready: %s (backend=%s)", model, cfg.STTBackend)

	var summarizer transcribe.Summarizer
	summaryModel := ""
	if cfg.SummaryAPIURL != "" {
		summarizer = transcribe.NewOllamaClient(cfg.SummaryAPIURL, cfg.SummaryModel)
		summaryModel = cfg.SummaryModel
		log.Printf("[api] summarization enabled: %s", summaryModel)
	}

	// =========================================================================
	// SERVICE
	// =========================================================================

	executor := offload.NewExecutor(cfg.OffloadWorkers)
	service := transcribe.NewService(recognizer, summarizer, executor)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	hTranscribe := delivery.NewTranscribeHandler(service, zl)
	hHealth := delivery.NewHealthHandler(model, summaryModel)

	delivery.RegisterRoutes(r, hTranscribe, hHealth, cfg.StaticDir)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "whisper_relay",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
