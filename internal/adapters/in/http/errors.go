package http

import (
	"log/slog"
	"net/http"

	"eatify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const kindUnauthenticated = "unauthenticated"

func statusOf(kind string) int {
	switch kind {
	case "validation":
		return http.StatusBadRequest
	case "conflict", "invalid_transition":
		return http.StatusConflict
	case "not_found":
		return http.StatusNotFound
	case "mismatch":
		return http.StatusUnprocessableEntity
	case "forbidden":
		return http.StatusForbidden
	case kindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an Error body. Untyped errors are logged and their text
// is kept out of the response.
func respondError(ctx echo.Context, err error) error {
	kind := errs.Kind(err)
	status := statusOf(kind)

	message := err.Error()
	if kind == "internal" {
		slog.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return writeError(ctx, status, kind, message)
}

func writeError(ctx echo.Context, status int, kind, message string) error {
	return ctx.JSON(status, Error{Code: status, Kind: kind, Message: message})
}
