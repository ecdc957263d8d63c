package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/moneybook/moneybook.go/controllers"
	"github.com/moneybook/moneybook.go/lib/service"
	"github.com/moneybook/moneybook.go/lib/tokens"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	TestSuite
	svc        *service.MoneybookService
	aliceToken string
	bobToken   string
}

func (suite *AccountTestSuite) SetupSuite() {
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
	suite.echo.GET("/accounts", accountCtrl.ListAccounts)
	suite.echo.POST("/accounts", accountCtrl.CreateAccount)
	suite.echo.GET("/accounts/:id", accountCtrl.GetAccount)
	suite.echo.PUT("/accounts/:id", accountCtrl.UpdateAccount)
	suite.echo.DELETE("/accounts/:id", accountCtrl.DeleteAccount)
}

func (suite *AccountTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearTable(suite.svc, "accounts"))
	assert.NoError(suite.T(), clearTable(suite.svc, "users"))
}

func (suite *AccountTestSuite) TestCreateAndMaskAccount() {
	account := suite.createAccountReq("Checking", "110-123-456789", decimal.NewFromInt(100000), suite.aliceToken)
	assert.Equal(suite.T(), "Checking", account.Name)
	assert.Equal(suite.T(), "110-***-6789", account.AccountNumber)
	assert.Equal(suite.T(), "100000", account.Balance.String())
	assert.True(suite.T(), account.IsActive)
}

func (suite *AccountTestSuite) TestRejectBadAccountNumber() {
	rec := suite.authed(http.MethodPost, "/accounts", &controllers.AccountRequestBody{
		Name:          "Bad",
		AccountNumber: "12AB",
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *AccountTestSuite) TestRejectNegativeOpeningBalance() {
	rec := suite.authed(http.MethodPost, "/accounts", &controllers.AccountRequestBody{
		Name:           "Bad",
		AccountNumber:  "12345678",
		OpeningBalance: decimal.NewFromInt(-1),
	}, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *AccountTestSuite) TestOwnershipIsolation() {
	account := suite.createAccountReq("Private", "220-123-456789", decimal.Zero, suite.aliceToken)

	// bob cannot see, update or delete alice's account
	rec := suite.authed(http.MethodGet, fmt.Sprintf("/accounts/%d", account.ID), nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	rec = suite.authed(http.MethodDelete, fmt.Sprintf("/accounts/%d", account.ID), nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	// and the error body is the same one a missing id produces
	rec = suite.authed(http.MethodGet, "/accounts/999999999", nil, suite.bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *AccountTestSuite) TestSoftDelete() {
	account := suite.createAccountReq("Closing", "330-123-456789", decimal.Zero, suite.aliceToken)

	rec := suite.authed(http.MethodDelete, fmt.Sprintf("/accounts/%d", account.ID), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	// gone from reads
	rec = suite.authed(http.MethodGet, fmt.Sprintf("/accounts/%d", account.ID), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	// but the row survives with is_active false
	var isActive bool
	err := suite.svc.DB.NewSelect().Table("accounts").
		Column("is_active").Where("id = ?", account.ID).
		Scan(context.Background(), &isActive)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), isActive)
}

func (suite *AccountTestSuite) TestListWithSummary() {
	response := &controllers.ListAccountsResponseBody{}
	rec := suite.authed(http.MethodGet, "/accounts", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	for _, account := range response.Accounts {
		assert.True(suite.T(), account.IsActive)
	}
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}
