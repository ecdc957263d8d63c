package tokens

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/moneybook/moneybook.go/db/models"
)

type jwtCustomClaims struct {
	ID        int64 `json:"id"`
	IsRefresh bool  `json:"isRefresh"`
	jwt.StandardClaims
}

// Middleware validates the bearer token and stores the user id on the
// request context as "UserID".
func Middleware(secret []byte) echo.MiddlewareFunc {
	config := middleware.JWTConfig{
		Claims:     &jwtCustomClaims{},
		SigningKey: secret,
		SuccessHandler: func(c echo.Context) {
			token := c.Get("user").(*jwt.Token)
			claims := token.Claims.(*jwtCustomClaims)
			c.Set("UserID", claims.ID)
			c.Set("IsRefreshToken", claims.IsRefresh)
		},
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			c.Logger().Error(err)
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
				"error":   true,
				"code":    1,
				"message": "bad auth",
			})
		},
	}
	return middleware.JWTWithConfig(config)
}

// ParseRefreshToken validates a refresh token and returns the user id it
// was minted for. Access tokens are rejected.
func ParseRefreshToken(secret []byte, tokenString string) (int64, error) {
	claims := &jwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("bad auth")
	}
	if !claims.IsRefresh {
		return 0, fmt.Errorf("bad auth")
	}
	return claims.ID, nil
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, u *models.User) (string, error) {
	claims := &jwtCustomClaims{
		ID:        u.ID,
		IsRefresh: false,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(expiryInSeconds) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateRefreshToken : Generate Refresh Token
func GenerateRefreshToken(secret []byte, expiryInSeconds int, u *models.User) (string, error) {
	claims := &jwtCustomClaims{
		ID:        u.ID,
		IsRefresh: true,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Duration(expiryInSeconds) * time.Second).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
