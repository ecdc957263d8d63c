package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var LoginTakenError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "login already exists",
	HttpStatusCode: 400,
}

// NotFoundError is the uniform answer for rows that do not exist and rows
// that belong to someone else. Ownership misses must not be distinguishable
// from missing rows.
var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "not found",
	HttpStatusCode: 404,
}

var InvalidAmountError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid amount",
	HttpStatusCode: 400,
}

var InvalidAccountNumberError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid account number",
	HttpStatusCode: 400,
}

var AttachmentExistsError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "transaction already has an attachment",
	HttpStatusCode: 400,
}

var InvalidAttachmentError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "only jpg, png and pdf files up to 5MB can be attached",
	HttpStatusCode: 400,
}

var AccountDeactivatedError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "Account has been suspended. Please contact support for further assistance.",
	HttpStatusCode: 401,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// isErrAllowedForSentry filters out expected auth failures so they don't
// pollute exception tracking.
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	body, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	return body["code"] != BadAuthError.Code
}
