package http

import (
	"log/slog"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/principal"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Authenticate verifies the bearer token and stores the principal in the
// request context.
func Authenticate(verifier principal.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, _ := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			p, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}
			c.SetRequest(c.Request().WithContext(principal.WithPrincipal(c.Request().Context(), p)))
			return next(c)
		}
	}
}

// RequireRole rejects principals holding none of roles.
func RequireRole(roles ...principal.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := principal.FromContext(c.Request().Context())
			if !ok {
				return principal.ErrMissingToken
			}
			if !p.Is(roles...) {
				return errs.NewForbiddenError("ROLE_NOT_ALLOWED", "role "+string(p.Role)+" may not call this operation")
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "http request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

func caller(c echo.Context) principal.Principal {
	p, _ := principal.FromContext(c.Request().Context())
	return p
}
