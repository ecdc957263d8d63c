package tokens

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware gates a route on the pre-shared admin token. With
// no token configured it is a no-op; the caller decides whether the
// admin routes get registered at all in that case. Candidates are
// compared in constant time.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(auth string, c echo.Context) (bool, error) {
		return subtle.ConstantTimeCompare([]byte(auth), []byte(token)) == 1, nil
	})
}
