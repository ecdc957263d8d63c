package responses

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestBadAuthErrorsNotAllowedForSentry(t *testing.T) {
	badAuthErrResponse := echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"error":   true,
		"code":    1,
		"message": "bad auth",
	})

	assert.False(t, isErrAllowedForSentry(badAuthErrResponse))
}

func TestNotBadAuthErrorsAllowedForSentry(t *testing.T) {
	notBadAuthErrResponse := echo.NewHTTPError(http.StatusBadRequest, echo.Map{
		"error":   true,
		"code":    2,
		"message": "not found",
	})

	assert.True(t, isErrAllowedForSentry(notBadAuthErrResponse))
}

func TestNonErrorResponseErrorsAllowedForSentry(t *testing.T) {
	assert.True(t, isErrAllowedForSentry(errors.New("random error")))
}
