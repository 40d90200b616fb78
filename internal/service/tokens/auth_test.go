package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminJWT(t *testing.T) {
	key := []byte("super secret key")

	tokenStr, genErr := GenerateAdminJWT("admin", time.Hour, key)
	require.NoError(t, genErr)
	require.NotEmpty(t, tokenStr)

	claims, valErr := ValidateAdminJWT(tokenStr, key)
	require.NoError(t, valErr)
	assert.Equal(t, "admin", claims.Login)
}

func TestAdminJWTExpired(t *testing.T) {
	key := []byte("super secret key")

	tokenStr, genErr := GenerateAdminJWT("admin", -time.Minute, key)
	require.NoError(t, genErr)

	_, valErr := ValidateAdminJWT(tokenStr, key)
	require.ErrorIs(t, valErr, ErrTokenExpired)
}

func TestAdminJWTWrongKey(t *testing.T) {
	tokenStr, genErr := GenerateAdminJWT("admin", time.Hour, []byte("super secret key"))
	require.NoError(t, genErr)

	_, valErr := ValidateAdminJWT(tokenStr, []byte("another key"))
	require.Error(t, valErr)
}
