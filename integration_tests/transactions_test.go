package integration_tests

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/moneybook/moneybook.go/controllers"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/service"
	"github.com/moneybook/moneybook.go/lib/tokens"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	TestSuite
	svc        *service.MoneybookService
	aliceToken string
	bobToken   string
}

func (suite *TransactionTestSuite) SetupSuite() {
	svc, err := MoneybookTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc

	_, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]

	suite.echo = newTestEcho()
	suite.echo.Use(tokens.Middleware(svc.Config.JWTSecret))
	accountCtrl := controllers.NewAccountController(svc)
	suite.echo.POST("/accounts", accountCtrl.CreateAccount)
	suite.echo.GET("/accounts/:id", accountCtrl.GetAccount)
	transactionCtrl := controllers.NewTransactionController(svc)
	suite.echo.GET("/transactions", transactionCtrl.ListTransactions)
	suite.echo.POST("/transactions", transactionCtrl.CreateTransaction)
	suite.echo.GET("/transactions/:id", transactionCtrl.GetTransaction)
	suite.echo.PUT("/transactions/:id", transactionCtrl.UpdateTransaction)
	suite.echo.DELETE("/transactions/:id", transactionCtrl.DeleteTransaction)
}

func (suite *TransactionTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearTable(suite.svc, "transactions"))
	assert.NoError(suite.T(), clearTable(suite.svc, "accounts"))
	assert.NoError(suite.T(), clearTable(suite.svc, "users"))
}

func (suite *TransactionTestSuite) postTransaction(body *controllers.TransactionRequestBody, token string) *models.Transaction {
	rec := suite.authed(http.MethodPost, "/transactions", body, token)
	transaction := &models.Transaction{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(transaction))
	return transaction
}

func (suite *TransactionTestSuite) accountBalance(accountId int64, token string) string {
	rec := suite.authed(http.MethodGet, fmt.Sprintf("/accounts/%d", accountId), nil, token)
	account := &controllers.AccountResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(account))
	return account.Balance.String()
}

func (suite *TransactionTestSuite) TestBalanceFollowsTransactions() {
	account := suite.createAccountReq("Spending", "440-123-456789", decimal.NewFromInt(100000), suite.aliceToken)
	occurredAt := time.Date(2026, time.June, 3, 12, 0, 0, 0, time.UTC)

	outgoing := suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(5000),
		OccurredAt: occurredAt,
		Merchant:   "Grocer",
	}, suite.aliceToken)
	assert.Equal(suite.T(), "95000", suite.accountBalance(account.ID, suite.aliceToken))

	suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(5000),
		OccurredAt: occurredAt,
	}, suite.aliceToken)
	assert.Equal(suite.T(), "90000", suite.accountBalance(account.ID, suite.aliceToken))

	// rewriting the amount moves the balance by the difference
	rec := suite.authed(http.MethodPut, fmt.Sprintf("/transactions/%d", outgoing.ID), &controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(3000),
		OccurredAt: occurredAt,
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "92000", suite.accountBalance(account.ID, suite.aliceToken))

	// deleting puts the money back
	rec = suite.authed(http.MethodDelete, fmt.Sprintf("/transactions/%d", outgoing.ID), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
	assert.Equal(suite.T(), "95000", suite.accountBalance(account.ID, suite.aliceToken))

	// incoming money raises the balance
	suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "IN",
		Amount:     decimal.NewFromInt(5000),
		OccurredAt: occurredAt,
	}, suite.aliceToken)
	assert.Equal(suite.T(), "100000", suite.accountBalance(account.ID, suite.aliceToken))
}

func (suite *TransactionTestSuite) TestConcurrentPostingsSerialize() {
	account := suite.createAccountReq("Contended", "770-123-456789", decimal.NewFromInt(100000), suite.aliceToken)
	occurredAt := time.Date(2026, time.June, 10, 8, 0, 0, 0, time.UTC)

	const postings = 10
	codes := make(chan int, postings)
	var wg sync.WaitGroup
	for i := 0; i < postings; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := suite.authed(http.MethodPost, "/transactions", &controllers.TransactionRequestBody{
				AccountID:  account.ID,
				Type:       "OUT",
				Amount:     decimal.NewFromInt(1000),
				OccurredAt: occurredAt,
			}, suite.aliceToken)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	// each posting holds the account row lock for its whole balance
	// update, so none of the writes may be lost
	for code := range codes {
		assert.Equal(suite.T(), http.StatusOK, code)
	}
	assert.Equal(suite.T(), "90000", suite.accountBalance(account.ID, suite.aliceToken))
}

func (suite *TransactionTestSuite) TestMoveBetweenAccounts() {
	first := suite.createAccountReq("First", "550-123-456789", decimal.NewFromInt(10000), suite.aliceToken)
	second := suite.createAccountReq("Second", "660-123-456789", decimal.NewFromInt(10000), suite.aliceToken)
	occurredAt := time.Date(2026, time.June, 4, 9, 0, 0, 0, time.UTC)

	transaction := suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID:  first.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(2000),
		OccurredAt: occurredAt,
	}, suite.aliceToken)
	assert.Equal(suite.T(), "8000", suite.accountBalance(first.ID, suite.aliceToken))

	// moving the transaction to the other account shifts both balances
	rec := suite.authed(http.MethodPut, fmt.Sprintf("/transactions/%d", transaction.ID), &controllers.TransactionRequestBody{
		AccountID:  second.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(2000),
		OccurredAt: occurredAt,
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "10000", suite.accountBalance(first.ID, suite.aliceToken))
	assert.Equal(suite.T(), "8000", suite.accountBalance(second.ID, suite.aliceToken))
}

func (suite *TransactionTestSuite) TestRejectBadAmounts() {
	account := suite.createAccountReq("Strict", "770-123-456789", decimal.NewFromInt(1000), suite.aliceToken)
	occurredAt := time.Now()

	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-100),
		decimal.New(2, 10), // over the cap
	} {
		rec := suite.authed(http.MethodPost, "/transactions", &controllers.TransactionRequestBody{
			AccountID:  account.ID,
			Type:       "OUT",
			Amount:     amount,
			OccurredAt: occurredAt,
		}, suite.aliceToken)
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	}
	assert.Equal(suite.T(), "1000", suite.accountBalance(account.ID, suite.aliceToken))
}

func (suite *TransactionTestSuite) TestOwnershipIsolation() {
	account := suite.createAccountReq("Hidden", "880-123-456789", decimal.NewFromInt(1000), suite.aliceToken)
	transaction := suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(100),
		OccurredAt: time.Now(),
	}, suite.aliceToken)

	// bob cannot read or post against alice's rows
	rec := suite.authed(http.MethodGet, fmt.Sprintf("/transactions/%d", transaction.ID), nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	rec = suite.authed(http.MethodPost, "/transactions", &controllers.TransactionRequestBody{
		AccountID:  account.ID,
		Type:       "OUT",
		Amount:     decimal.NewFromInt(100),
		OccurredAt: time.Now(),
	}, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "900", suite.accountBalance(account.ID, suite.aliceToken))
}

func (suite *TransactionTestSuite) TestListFilters() {
	account := suite.createAccountReq("Filtered", "990-123-456789", decimal.NewFromInt(100000), suite.aliceToken)
	june := time.Date(2026, time.June, 10, 10, 0, 0, 0, time.UTC)
	july := time.Date(2026, time.July, 10, 10, 0, 0, 0, time.UTC)

	suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID: account.ID, Type: "OUT", Amount: decimal.NewFromInt(100),
		OccurredAt: june, Merchant: "Corner cafe",
	}, suite.aliceToken)
	suite.postTransaction(&controllers.TransactionRequestBody{
		AccountID: account.ID, Type: "IN", Amount: decimal.NewFromInt(200),
		OccurredAt: july, Memo: "salary",
	}, suite.aliceToken)

	list := func(target string) *controllers.ListTransactionsResponseBody {
		rec := suite.authed(http.MethodGet, target, nil, suite.aliceToken)
		response := &controllers.ListTransactionsResponseBody{}
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
		return response
	}

	byType := list(fmt.Sprintf("/transactions?account=%d&type=IN", account.ID))
	assert.Len(suite.T(), byType.Transactions, 1)
	assert.Equal(suite.T(), "salary", byType.Transactions[0].Memo)

	byDate := list(fmt.Sprintf("/transactions?account=%d&start_date=2026-06-01&end_date=2026-06-30", account.ID))
	assert.Len(suite.T(), byDate.Transactions, 1)
	assert.Equal(suite.T(), "Corner cafe", byDate.Transactions[0].Merchant)

	bySearch := list(fmt.Sprintf("/transactions?account=%d&q=cafe", account.ID))
	assert.Len(suite.T(), bySearch.Transactions, 1)
	assert.Equal(suite.T(), "Corner cafe", bySearch.Transactions[0].Merchant)
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
