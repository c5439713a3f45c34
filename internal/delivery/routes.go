package delivery

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hTranscribe *TranscribeHandler,
	hHealth *HealthHandler,
	staticDir string,
) {
	r.With(
		httputil.RecoverMiddleware,
		httprate.LimitByIP(30, time.Minute),
	).Post("/transcribe", hTranscribe.Transcribe)

	r.With(httputil.RecoverMiddleware).Get("/health", hHealth.Health)

	// --- static ---
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
}
