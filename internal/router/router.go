package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studykit-backend/internal/handlers"
	"studykit-backend/internal/logger"
	"studykit-backend/internal/middleware"
)

type Options struct {
	FrontendURL    string
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter
	// Sentry wraps the whole router when error reporting is enabled.
	Sentry func(http.Handler) http.Handler
}

func New(
	contentHandler *handlers.ContentHandler,
	aiHandler *handlers.AIHandler,
	log *logger.Logger,
	opts Options,
) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	if opts.Sentry != nil {
		r.Use(opts.Sentry)
	}
	r.Use(middleware.CORS(opts.FrontendURL))
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Content Routes ────
		r.Route("/content", func(r chi.Router) {
			r.Get("/supported-formats", contentHandler.SupportedFormats)
			r.Get("/status/{id}", contentHandler.Status)

			r.Group(func(r chi.Router) {
				if opts.RateLimiter != nil {
					r.Use(opts.RateLimiter.Middleware)
				}
				r.Post("/youtube", contentHandler.YouTube)
				r.Post("/upload", contentHandler.Upload)
				r.Post("/text", contentHandler.Text)
			})
		})

		// ──── AI Routes ────
		r.Route("/ai", func(r chi.Router) {
			r.Get("/features", aiHandler.Features)

			r.Group(func(r chi.Router) {
				if opts.RateLimiter != nil {
					r.Use(opts.RateLimiter.Middleware)
				}
				r.Post("/summarize", aiHandler.Summary)
				r.Post("/summary", aiHandler.Summary)
				r.Post("/notes", aiHandler.Notes)
				r.Post("/flashcards", aiHandler.Flashcards)
				r.Post("/quiz", aiHandler.Quiz)
			})
		})
	})

	return r
}
