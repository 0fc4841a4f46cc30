package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/assemblie-checkin/internal/api/apierr"
	"github.com/mcoot/assemblie-checkin/internal/middleware"
)

// Recovery turns handler panics into a JSON 500 that quotes the request id
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalErrorForRequest(middleware.RequestIDFrom(r.Context())))
}
