package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/whisper_relay/internal/transcribe"
)

type TranscriptionService interface {
	Transcribe(ctx context.Context, data []byte, filename string) (*transcribe.Result, error)
}

type TranscribeHandler struct {
	service TranscriptionService
	log     *logger.ZapLogger
}

func NewTranscribeHandler(service TranscriptionService, log *logger.ZapLogger) *TranscribeHandler {
	return &TranscribeHandler{
		service: service,
		log:     log,
	}
}

func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file field", Error: err})
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	result, err := h.service.Transcribe(r.Context(), data, header.Filename)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcription failed", Error: err})
		if errors.Is(err, transcribe.ErrStaging) {
			writeError(w, http.StatusInternalServerError, transcribe.ErrStaging.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
