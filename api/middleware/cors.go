package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",      // local dev
	"http://localhost:5173",      // Vite dev server
	"https://mandimitra.app",     // production frontend
	"https://www.mandimitra.app", // production frontend alias
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-MM-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-MM-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
