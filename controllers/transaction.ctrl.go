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
)

// TransactionController : TransactionController struct
type TransactionController struct {
	svc *service.MoneybookService
}

func NewTransactionController(svc *service.MoneybookService) *TransactionController {
	return &TransactionController{svc: svc}
}

type TransactionRequestBody struct {
	AccountID  int64           `json:"account_id" validate:"required"`
	CategoryID int64           `json:"category_id"`
	Type       string          `json:"type" validate:"required,oneof=IN OUT"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at" validate:"required"`
	Merchant   string          `json:"merchant" validate:"max=100"`
	Memo       string          `json:"memo"`
}

type ListTransactionsResponseBody struct {
	Transactions []models.Transaction `json:"transactions"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

func (body *TransactionRequestBody) toModel(userId int64) *models.Transaction {
	return &models.Transaction{
		UserID:     userId,
		AccountID:  body.AccountID,
		CategoryID: body.CategoryID,
		Type:       body.Type,
		Amount:     body.Amount,
		OccurredAt: body.OccurredAt,
		Merchant:   body.Merchant,
		Memo:       body.Memo,
	}
}

func transactionErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, responses.NotFoundError)
	case errors.Is(err, ledger.ErrBadAmount):
		return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
	}
	return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Current user's transactions, newest first, with optional filters
// @Produce      json
// @Tags         Transaction
// @Param        account     query     int     false  "Account ID"
// @Param        category    query     int     false  "Category ID"
// @Param        type        query     string  false  "IN or OUT"
// @Param        start_date  query     string  false  "YYYY-MM-DD, inclusive"
// @Param        end_date    query     string  false  "YYYY-MM-DD, inclusive"
// @Param        q           query     string  false  "memo/merchant substring"
// @Param        limit       query     int     false  "Page size, max 500"
// @Param        offset      query     int     false  "Page offset"
// @Success      200         {object}  ListTransactionsResponseBody
// @Failure      400         {object}  responses.ErrorResponse
// @Router       /transactions [get]
// @Security     OAuth2Password
func (controller *TransactionController) ListTransactions(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	filter := service.TransactionFilter{
		Type:  c.QueryParam("type"),
		Query: c.QueryParam("q"),
	}
	filter.AccountID, _ = strconv.ParseInt(c.QueryParam("account"), 10, 64)
	filter.CategoryID, _ = strconv.ParseInt(c.QueryParam("category"), 10, 64)
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	loc := controller.svc.TimeLocation()
	if raw := c.QueryParam("start_date"); raw != "" {
		startDate, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		filter.StartDate = startDate
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		endDate, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		filter.EndDate = endDate
	}

	transactions, err := controller.svc.TransactionsFor(c.Request().Context(), userId, filter)
	if err != nil {
		c.Logger().Errorf("Failed to list transactions for user_id:%v error: %v", userId, err)
		return transactionErrorResponse(c, err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	return c.JSON(http.StatusOK, &ListTransactionsResponseBody{
		Transactions: transactions,
		Limit:        limit,
		Offset:       filter.Offset,
	})
}

// CreateTransaction godoc
// @Summary      Record a transaction
// @Description  Post an IN or OUT transaction against one of the user's accounts
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        transaction  body      TransactionRequestBody  true  "Transaction"
// @Success      200          {object}  models.Transaction
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      404          {object}  responses.ErrorResponse
// @Router       /transactions [post]
// @Security     OAuth2Password
func (controller *TransactionController) CreateTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body TransactionRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction := body.toModel(userId)
	if err := controller.svc.CreateTransaction(c.Request().Context(), transaction); err != nil {
		c.Logger().Errorf("Failed to create transaction for user_id:%v error: %v", userId, err)
		return transactionErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

// GetTransaction godoc
// @Summary      Retrieve a transaction
// @Produce      json
// @Tags         Transaction
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  models.Transaction
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /transactions/{id} [get]
// @Security     OAuth2Password
func (controller *TransactionController) GetTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	transactionId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.FindTransaction(c.Request().Context(), userId, transactionId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to fetch transaction transaction_id:%v user_id:%v error: %v", transactionId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary      Update a transaction
// @Description  Rewrite a transaction; account balances follow the change
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        id           path      int                     true  "Transaction ID"
// @Param        transaction  body      TransactionRequestBody  true  "Transaction"
// @Success      200          {object}  models.Transaction
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      404          {object}  responses.ErrorResponse
// @Router       /transactions/{id} [put]
// @Security     OAuth2Password
func (controller *TransactionController) UpdateTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	transactionId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body TransactionRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.UpdateTransaction(c.Request().Context(), userId, transactionId, body.toModel(userId))
	if err != nil {
		c.Logger().Errorf("Failed to update transaction transaction_id:%v user_id:%v error: %v", transactionId, userId, err)
		return transactionErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary      Delete a transaction
// @Description  Remove a transaction, reverse its balance effect and drop its receipt
// @Produce      json
// @Tags         Transaction
// @Param        id  path  int  true  "Transaction ID"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /transactions/{id} [delete]
// @Security     OAuth2Password
func (controller *TransactionController) DeleteTransaction(c echo.Context) error {
	userId := c.Get("UserID").(int64)
	transactionId, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err = controller.svc.DeleteTransaction(c.Request().Context(), userId, transactionId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.NotFoundError)
		}
		c.Logger().Errorf("Failed to delete transaction transaction_id:%v user_id:%v error: %v", transactionId, userId, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.NoContent(http.StatusNoContent)
}
