package middlewares

import (
	"net/http"
	"os"

	ghandlers "github.com/gorilla/handlers"
)

// CORSMiddleware restricts cross-origin access to the configured allow-list.
// Requests without an Origin header (curl, server-to-server) pass untouched.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return ghandlers.CORS(
		ghandlers.AllowedOrigins(allowedOrigins),
		ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		ghandlers.AllowedHeaders([]string{"Content-Type"}),
	)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.LoggingHandler(os.Stdout, next)
}
