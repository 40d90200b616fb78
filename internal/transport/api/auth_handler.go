package api

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/simka/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvs AuthServicer
}

func NewAuthHandler(authSvs AuthServicer) *AuthHandler {
	return &AuthHandler{
		authSvs: authSvs,
	}
}

type AdminLoginParams struct {
	Login    string `binding:"required,min=1,max=64"  json:"login"`
	Password string `binding:"required,min=6,max=255" json:"password"`
}

// Login POST AdminRouteGroup + LoginRoute. Аутентификация администратора по
// паре логин/пароль.
func (h *AuthHandler) Login(c *gin.Context) {
	var params AdminLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	token, err := h.authSvs.Login(params.Login, params.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
