package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// UpdateUserController : Update user controller struct
type UpdateUserController struct {
	svc *service.MoneybookService
}

func NewUpdateUserController(svc *service.MoneybookService) *UpdateUserController {
	return &UpdateUserController{svc: svc}
}

type UpdateUserResponseBody struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Deactivated bool   `json:"deactivated"`
}
type UpdateUserRequestBody struct {
	ID          int64   `json:"id" validate:"required"`
	Login       *string `json:"login,omitempty"`
	Password    *string `json:"password,omitempty"`
	Deactivated *bool   `json:"deactivated,omitempty"`
}

// UpdateUser godoc
// @Summary      Update an account
// @Description  Update an account holder's login, password or activation status
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      UpdateUserRequestBody  false  "Update User"
// @Success      200      {object}  UpdateUserResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /admin/users [put]
func (controller *UpdateUserController) UpdateUser(c echo.Context) error {

	var body UpdateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid update user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.UpdateUser(c.Request().Context(), body.ID, body.Login, body.Password, body.Deactivated)
	if err != nil {
		c.Logger().Errorf("Failed to update user: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var ResponseBody UpdateUserResponseBody
	ResponseBody.ID = user.ID
	ResponseBody.Login = user.Login
	ResponseBody.Deactivated = user.Deactivated

	return c.JSON(http.StatusOK, &ResponseBody)
}
