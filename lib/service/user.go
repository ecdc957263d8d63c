package service

import (
	"context"
	"fmt"

	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/security"
	"github.com/moneybook/moneybook.go/lib/tokens"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *MoneybookService) CreateUser(ctx context.Context, login string, password string) (user *models.User, err error) {

	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		user.Login = string(randLoginBytes)
	}

	if password == "" {
		randPasswordBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		password = string(randPasswordBytes)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}

	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	_, err = svc.DB.NewInsert().Model(user).Exec(ctx)
	//return actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *MoneybookService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *MoneybookService) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

// UpdateUser is the admin path for renaming, repassword'ing or
// (de)activating a user.
func (svc *MoneybookService) UpdateUser(ctx context.Context, userId int64, login, password *string, deactivated *bool) (user *models.User, err error) {
	user, err = svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if login != nil {
		user.Login = *login
	}
	if password != nil {
		user.Password = security.HashPassword(*password)
	}
	if deactivated != nil {
		user.Deactivated = *deactivated
	}
	_, err = svc.DB.NewUpdate().Model(user).WherePK().Exec(ctx)
	return user, err
}

func (svc *MoneybookService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user *models.User

	switch {
	case login != "" || password != "":
		{
			if user, err = svc.FindUserByLogin(ctx, login); err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", fmt.Errorf("bad auth")
			}
		}
	case inRefreshToken != "":
		{
			userId, err := tokens.ParseRefreshToken(svc.Config.JWTSecret, inRefreshToken)
			if err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
			if user, err = svc.FindUser(ctx, userId); err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
		}
	default:
		{
			return "", "", fmt.Errorf("login and password or refresh token is required")
		}
	}

	if user.Deactivated {
		return "", "", fmt.Errorf("account deactivated")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
