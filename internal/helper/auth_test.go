package helper

import (
	"testing"

	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "deng@example.com", domain.RoleApplicant)
	require.NoError(t, err)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "deng@example.com", claims.Email)
	assert.Equal(t, "applicant", claims.Role)
}

func TestVerifyTokenAcceptsBearerPrefix(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "deng@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(7, "deng@example.com", domain.RoleApplicant)
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)
	_, err = auth.VerifyToken("not-a-token")
	assert.Error(t, err)
	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
}

func TestGenerateTokenRequiresIdentity(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.GenerateToken(0, "deng@example.com", domain.RoleApplicant)
	assert.Error(t, err)
	_, err = auth.GenerateToken(7, "", domain.RoleApplicant)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret")

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, auth.VerifyPassword("s3cret-pass", hash))
	assert.Error(t, auth.VerifyPassword("wrong-pass", hash))
}
