package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const (
	DevOrigin    = "http://localhost:5173"
	vercelSuffix = ".vercel.app"
)

// AllowOrigin reports whether origin is on the fixed allow-list for the
// given environment: the local Vite dev server in development, any Vercel
// deployment in production.
func AllowOrigin(production bool, origin string) bool {
	if production {
		return strings.HasSuffix(origin, vercelSuffix)
	}
	return origin == DevOrigin
}

func CORS(production bool) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return AllowOrigin(production, origin)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}
