package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/tptech/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("path", c.Path()))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	slog.InfoContext(c.Request().Context(), "bad request", slog.String("error", msg), slog.String("path", c.Path()))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// InternalErrorMessage is the only text a client sees for a server side failure.
const InternalErrorMessage = "internal error"

// RecordError logs err and attaches it to the request span.
func RecordError(c echo.Context, err error) {
	ctx := c.Request().Context()
	trace.SpanFromContext(ctx).RecordError(err)
	slog.ErrorContext(ctx, "internal error", slog.String("error", err.Error()), slog.String("path", c.Path()))
}

func InternalError(c echo.Context, err error) error {
	RecordError(c, err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: InternalErrorMessage})
}

// Error maps a usecase error to its response. Content that fails its schema is
// an authoring defect and reported as a server error.
func Error(c echo.Context, err error) error {
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return NotFound(c, nf.Error())
	}
	return InternalError(c, err)
}
