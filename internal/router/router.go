package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"visionchat/internal/handlers"
	"visionchat/internal/middleware"
)

// MaxBodyBytes caps /api/chat bodies; images travel inline as data URIs.
const MaxBodyBytes = 10 << 20

func New(
	chatHandler *handlers.ChatHandler,
	providerName string,
	production bool,
	logger *zap.SugaredLogger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(production))

	// Liveness
	r.Get("/", handlers.Root(providerName))

	r.Route("/api", func(r chi.Router) {
		r.With(chimiddleware.RequestSize(MaxBodyBytes)).Post("/chat", chatHandler.Chat)
	})

	return r
}
