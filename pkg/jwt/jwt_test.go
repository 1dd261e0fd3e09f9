package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(testSecret, 42, 7, "TenantAdmin", "erpcrm-test", 24*60)
	require.NoError(t, err)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.TenantID)
	assert.Equal(t, "TenantAdmin", claims.Role)
	assert.NotEmpty(t, claims.ID, "cada token lleva jti")

	// Expiración ~24h por delante
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := generateAt(time.Now().Add(-25*time.Hour), testSecret, 1, 1, "User", "erpcrm-test", 24*60)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(testSecret, 1, 1, "User", "erpcrm-test", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformado(t *testing.T) {
	for _, s := range []string{"", "abc", "a.b.c", "MXwxfFVzZXJ8MA=="} {
		assert.NotPanics(t, func() {
			_, err := Parse(testSecret, s)
			assert.ErrorIs(t, err, ErrInvalidToken, s)
		})
	}
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", 1, 1, "User", "x", 60)
	assert.Error(t, err)
}
