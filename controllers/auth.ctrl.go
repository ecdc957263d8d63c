package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.MoneybookService
}

func NewAuthController(svc *service.MoneybookService) *AuthController {
	return &AuthController{
		svc: svc,
	}
}

type AuthRequestBody struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}
type AuthResponseBody struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// Auth godoc
// @Summary      Authenticate
// @Description  Exchange login/password or a refresh token for a JWT pair
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        credentials  body      AuthRequestBody  false  "Credentials"
// @Success      200          {object}  AuthResponseBody
// @Failure      401          {object}  responses.ErrorResponse
// @Router       /auth [post]
func (controller *AuthController) Auth(c echo.Context) error {

	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, refreshToken, err := controller.svc.GenerateToken(c.Request().Context(), body.Login, body.Password, body.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
	})
}
