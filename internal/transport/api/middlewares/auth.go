package middlewares

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/simka/internal/service/tokens"
	"github.com/gin-gonic/gin"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentAdminKey = "currentAdmin"

const bearerPrefix = "Bearer "

// checkAuthorization извлекает токен из заголовка Authorization и проверяет
// его. Если токен не передан, вернется ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtSecret []byte) (*tokens.AdminClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	if len(tokenHeader) < len(bearerPrefix) || tokenHeader[:len(bearerPrefix)] != bearerPrefix {
		return nil, ErrTokenNotExist
	}

	claims, err := tokens.ValidateAdminJWT(tokenHeader[len(bearerPrefix):], jwtSecret)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return claims, nil
}

// AdminRequired проверяет, что запрос авторизован админским токеном.
// Записывает логин админа в контекст (поле CurrentAdminKey).
func AdminRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		c.Set(CurrentAdminKey, claims.Login)
		c.Next()
	}
}
