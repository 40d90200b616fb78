package service

import (
	"errors"
	"time"

	"github.com/fsdevblog/simka/internal/service/psswd"
	"github.com/fsdevblog/simka/internal/service/tokens"
)

const adminTokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService авторизует администратора. Единственная учетная запись задается
// конфигурацией: логин + bcrypt-хеш пароля.
type AuthService struct {
	adminLogin        string
	adminPasswordHash string
	jwtSecret         []byte
}

func NewAuthService(adminLogin, adminPasswordHash string, jwtSecret []byte) *AuthService {
	return &AuthService{
		adminLogin:        adminLogin,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
	}
}

// Login проверяет учетные данные и выдает JWT на сутки.
func (a *AuthService) Login(login, password string) (string, error) {
	if login != a.adminLogin || !psswd.Compare(password, a.adminPasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := tokens.GenerateAdminJWT(login, adminTokenTTL, a.jwtSecret)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	return token, nil
}

// Validate проверяет токен и возвращает логин администратора.
func (a *AuthService) Validate(token string) (string, error) {
	claims, err := tokens.ValidateAdminJWT(token, a.jwtSecret)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	return claims.Login, nil
}
