package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func adminEcho(token string) *echo.Echo {
	e := echo.New()
	e.PUT("/admin/users", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, AdminTokenMiddleware(token))
	return e
}

func adminRequest(e *echo.Echo, authHeader string) int {
	req := httptest.NewRequest(http.MethodPut, "/admin/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestAdminTokenMiddleware(t *testing.T) {
	e := adminEcho("sekret")
	assert.Equal(t, http.StatusOK, adminRequest(e, "Bearer sekret"))
	assert.Equal(t, http.StatusUnauthorized, adminRequest(e, "Bearer wrong"))
	assert.Equal(t, http.StatusBadRequest, adminRequest(e, ""))
}

func TestAdminTokenMiddlewareUnconfigured(t *testing.T) {
	e := adminEcho("")
	assert.Equal(t, http.StatusOK, adminRequest(e, ""))
}
