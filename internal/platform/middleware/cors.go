package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/janisto/connect-provisioner/internal/platform/logging"
)

// CORS returns middleware allowing the given origins. An empty list allows any origin.
func CORS(origins ...string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
			logging.TraceHeader,
		},
		ExposedHeaders: []string{"Location", "X-Request-Id", logging.TraceHeader},
		MaxAge:         300,
	})
}

// Vary adds Accept to the Vary header; responses are negotiated between JSON and CBOR.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
