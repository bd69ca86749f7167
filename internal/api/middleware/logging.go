package middleware

import (
	"log/slog"
	"net/http"

	"github.com/solhaven/astrocade/internal/middleware"
)

// Logging creates request logging middleware
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
