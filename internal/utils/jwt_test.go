package utils_test

import (
	"testing"
	"time"

	"github.com/MinhMaxx/personal-website-backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() utils.JWTManager {
	return utils.JWTManager{Secret: []byte("test-secret"), Issuer: "personal-site", TokenTTL: time.Hour}
}

func TestIssueAndParseAdminToken(t *testing.T) {
	m := newManager()

	token, ttl, err := m.IssueAdminToken("admin")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := m.ParseAdminToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueAdminToken_DistinctWithinSameSecond(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newManager()
	m.Now = func() time.Time { return fixed }

	first, _, err := m.IssueAdminToken("admin")
	require.NoError(t, err)
	second, _, err := m.IssueAdminToken("admin")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestParseAdminToken_Expired(t *testing.T) {
	m := newManager()
	m.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.IssueAdminToken("admin")
	require.NoError(t, err)

	_, err = newManager().ParseAdminToken(token)

	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAdminToken_WrongSecret(t *testing.T) {
	token, _, err := newManager().IssueAdminToken("admin")
	require.NoError(t, err)

	other := newManager()
	other.Secret = []byte("another-secret")
	_, err = other.ParseAdminToken(token)

	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAdminToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := utils.AdminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "personal-site",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newManager().ParseAdminToken(unsigned)

	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAdminToken_Garbage(t *testing.T) {
	_, err := newManager().ParseAdminToken("not-a-jwt")

	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestAdminTokenTTLDefault(t *testing.T) {
	m := utils.JWTManager{Secret: []byte("s")}

	assert.Equal(t, utils.DefaultAdminTokenTTL, m.TTL())
}
