package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/moneybook/moneybook.go/lib/responses"
	"github.com/moneybook/moneybook.go/lib/service"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// AccountController : AccountController struct
type AccountController struct {
	svc *service.MoneybookService
}

func NewAccountController(svc *service.MoneybookService) *AccountController {
	return &AccountController{svc: svc}
}

type AccountRequestBody struct {
	Name           string          `json:"name" validate:"required,max=100"`
	BankName       string          `json:"bank_name" validate:"max=50"`
	AccountNumber  string          `json:"account_number" validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type AccountResponseBody struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     bun.NullTime    `json:"updated_at"`
}

type ListAccountsResponseBody struct {
	Accounts []AccountResponseBody   `json:"accounts"`
	Summary  service.AccountsSummary `json:"summary"`
}

func newAccountResponse(account *models.Account) AccountResponseBody {
	return AccountResponseBody{
		ID:            account.ID,
		Name:          account.Name,
		BankName:      account.BankName,
		AccountNumber: account.MaskedNumber(),
		Balance:       account.Balance,
		IsActive:      account.IsActive,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Current user's active accounts with all-time totals and net assets
// @Produce      json
// @Tags         Account
// @Success      200  {object}  ListAccountsResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /accounts [get]
// @Security     OAuth2Password
func (controller *AccountController) ListAccounts(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	ctx := c.Request().Context()

	accounts, err := controller.svc.AccountsFor(ctx, userId)
	if err != nil {
		c.Logger().Errorf("Failed to list accounts for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	summary, err := controller.svc.AccountsSummaryFor(ctx, userId)
	if err != nil {
		c.Logger().Errorf("Failed to compute account summary for user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := ListAccountsResponseBody{
		Accounts: make([]AccountResponseBody, 0, len(accounts)),
		Summary:  *summary,
	}
	for i := range accounts {
		response.Accounts = append(response.Accounts, newAccountResponse(&accounts[i]))
	}
	return c.JSON(http.StatusOK, &response)
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Add a bank account with an opening balance
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      AccountRequestBody  true  "Account"
// @Success      200      {object}  AccountResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /accounts [post]
// @Security     OAuth2Password
func (controller *AccountController) CreateAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body AccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), userId,
		body.Name, body.BankName, body.AccountNumber, body.OpeningBalance)
	if err != nil {
		c.Logger().Errorf("Failed to create account for user_id:%v error: %v", userId, err)
		switch {
		case errors.Is(err, ledger.ErrBadAccountNumber):
			return c.JSON(http.StatusBadRequest, responses.InvalidAccountNumberError)
		case errors.Is(err, ledger.ErrBadAmount):
			return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
		}
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := newAccountResponse(account)
	return c.JSON(http.StatusOK, &response)
}

// GetAccount godoc
// @Summary      Retrieve an account
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  AccountResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /accounts/{id} [get]
// @Security     OAuth2Password
func (controller *AccountController) GetAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	accountId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.FindAccount(c.Request().Context(), userId, accountId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to fetch account account_id:%v user_id:%v error: %v", accountId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := newAccountResponse(account)
	return c.JSON(http.StatusOK, &response)
}

// UpdateAccount godoc
// @Summary      Update an account
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        id       path      int                 true  "Account ID"
// @Param        account  body      AccountRequestBody  true  "Account"
// @Success      200      {object}  AccountResponseBody
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /accounts/{id} [put]
// @Security     OAuth2Password
func (controller *AccountController) UpdateAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	accountId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body AccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.UpdateAccount(c.Request().Context(), userId, accountId,
		body.Name, body.BankName, body.AccountNumber)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		case errors.Is(err, ledger.ErrBadAccountNumber):
			return c.JSON(http.StatusBadRequest, responses.InvalidAccountNumberError)
		}
		c.Logger().Errorf("Failed to update account account_id:%v user_id:%v error: %v", accountId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := newAccountResponse(account)
	return c.JSON(http.StatusOK, &response)
}

// DeleteAccount godoc
// @Summary      Deactivate an account
// @Description  Soft delete: the account and its transactions are kept but hidden
// @Produce      json
// @Tags         Account
// @Param        id  path  int  true  "Account ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /accounts/{id} [delete]
// @Security     OAuth2Password
func (controller *AccountController) DeleteAccount(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	accountId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.DeactivateAccount(c.Request().Context(), userId, accountId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to deactivate account account_id:%v user_id:%v error: %v", accountId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
