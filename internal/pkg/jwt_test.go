package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccess(t *testing.T) {
	InitJWT("access-secret", "refresh-secret")

	pair, err := GeneratePair(42, PrincipalUser)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.PrincipalID)
	assert.Equal(t, PrincipalUser, claims.Kind)
}

func TestRefreshKeepsPrincipal(t *testing.T) {
	InitJWT("access-secret", "refresh-secret")

	pair, err := GeneratePair(7, PrincipalAdmin)
	require.NoError(t, err)

	fresh, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.PrincipalID)
	assert.Equal(t, PrincipalAdmin, claims.Kind)
}

func TestParseAccessRejectsRefreshSecretToken(t *testing.T) {
	InitJWT("access-secret", "refresh-secret")

	pair, err := GeneratePair(1, PrincipalUser)
	require.NoError(t, err)

	// refresh 用的是另一把密钥，不能当 access 用
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestParseAccessGarbage(t *testing.T) {
	InitJWT("access-secret", "refresh-secret")
	_, err := ParseAccess("not-a-token")
	assert.Error(t, err)
}
