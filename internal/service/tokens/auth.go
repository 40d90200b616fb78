package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

type AdminClaims struct {
	jwt.RegisteredClaims
	Login string
}

func GenerateAdminJWT(login string, expire time.Duration, key []byte) (string, error) {
	adminClaims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		Login: login,
	}
	token, err := generateJWT(adminClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating admin jwt token: %s", err.Error())
	}
	return token, nil
}

func ValidateAdminJWT(tokenString string, key []byte) (*AdminClaims, error) {
	token, err := validateJWT(tokenString, new(AdminClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating admin jwt token: %w", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %s", err.Error())
	}

	return tokenString, nil
}

func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}

	return token, nil
}
