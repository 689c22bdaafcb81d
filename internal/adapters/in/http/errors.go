package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

// statusOf maps an application error to its HTTP status and error kind.
func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, principal.ErrMissingToken), errors.Is(err, principal.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, "Validation"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "NotFound"
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict, "StateConflict"
	case errors.Is(err, errs.ErrConsistency):
		return http.StatusUnprocessableEntity, "Consistency"
	default:
		return http.StatusInternalServerError, "Internal"
	}
}

func errorBody(err error) Error {
	status, kind := statusOf(err)
	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	return Error{Code: status, Kind: kind, Reason: errs.CodeOf(err), Message: message}
}

// NewErrorHandler renders every error returned by a route as an Error body.
// Server-side failures are logged with their cause and hidden from the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := errorBody(err)
		if body.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
