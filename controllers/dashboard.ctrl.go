package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
)

// DashboardController : DashboardController struct
type DashboardController struct {
	svc *service.MoneybookService
}

func NewDashboardController(svc *service.MoneybookService) *DashboardController {
	return &DashboardController{svc: svc}
}

// Dashboard godoc
// @Summary      Monthly dashboard
// @Description  Totals, top expense categories, calendar grid and recent transactions for a month. A malformed month falls back to the current one.
// @Produce      json
// @Tags         Dashboard
// @Param        month    query     string  false  "YYYY-MM, defaults to the current month"
// @Param        account  query     int     false  "Narrow to one account"
// @Success      200      {object}  service.MonthlySummary
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /dashboard [get]
// @Security     OAuth2Password
func (controller *DashboardController) Dashboard(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	year, month := ledger.ParseMonth(c.QueryParam("month"), time.Now())
	accountId, _ := strconv.ParseInt(c.QueryParam("account"), 10, 64)

	summary, err := controller.svc.Dashboard(c.Request().Context(), userId, year, month, accountId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to build dashboard for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, summary)
}
