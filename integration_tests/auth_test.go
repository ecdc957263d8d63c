package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"testing"

	"github.com/moneybook/moneybook.go/controllers"
	"github.com/moneybook/moneybook.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	TestSuite
	svc   *service.MoneybookService
	login userLogin
}

func (suite *AuthTestSuite) SetupSuite() {
	svc, err := MoneybookTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc

	logins, _, err := createUsers(svc, 1)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.login = logins[0]

	suite.echo = newTestEcho()
	suite.echo.POST("/auth", controllers.NewAuthController(svc).Auth)
}

func (suite *AuthTestSuite) TearDownSuite() {
	assert.NoError(suite.T(), clearTable(suite.svc, "users"))
}

func (suite *AuthTestSuite) TestAuthWithPassword() {
	rec := suite.authed(http.MethodPost, "/auth", &controllers.AuthRequestBody{
		Login:    suite.login.Login,
		Password: suite.login.Password,
	}, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	response := &controllers.AuthResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.NotEmpty(suite.T(), response.AccessToken)
	assert.NotEmpty(suite.T(), response.RefreshToken)

	// a refresh token mints a fresh pair
	rec = suite.authed(http.MethodPost, "/auth", &controllers.AuthRequestBody{
		RefreshToken: response.RefreshToken,
	}, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *AuthTestSuite) TestAuthWrongPassword() {
	rec := suite.authed(http.MethodPost, "/auth", &controllers.AuthRequestBody{
		Login:    suite.login.Login,
		Password: "wrong",
	}, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *AuthTestSuite) TestDeactivatedUser() {
	deactivated := true
	user, err := suite.svc.FindUserByLogin(context.Background(), suite.login.Login)
	assert.NoError(suite.T(), err)
	_, err = suite.svc.UpdateUser(context.Background(), user.ID, nil, nil, &deactivated)
	assert.NoError(suite.T(), err)

	rec := suite.authed(http.MethodPost, "/auth", &controllers.AuthRequestBody{
		Login:    suite.login.Login,
		Password: suite.login.Password,
	}, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	// reactivate for any later suites sharing the database
	active := false
	_, err = suite.svc.UpdateUser(context.Background(), user.ID, nil, nil, &active)
	assert.NoError(suite.T(), err)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
