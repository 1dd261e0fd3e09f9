package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	hash, err := h.Hash("Gizli123")
	require.NoError(t, err)

	assert.NoError(t, h.Verify(hash, "Gizli123"))
	assert.ErrorIs(t, h.Verify(hash, "gizli123"), ErrMismatch)

	// Con sal: dos hashes de la misma clave difieren
	other, err := h.Hash("Gizli123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestLegacySHA256_FormatoHeredado(t *testing.T) {
	var h LegacySHA256
	hash, err := h.Hash("admin")
	require.NoError(t, err)
	// base64(sha256("admin"))
	assert.Equal(t, "jGl25bVBBBW96Qi9Te4V37Fnqchz/Eu4qB9vKrRIqRg=", hash)
	assert.NoError(t, h.Verify(hash, "admin"))
	assert.ErrorIs(t, h.Verify(hash, "Admin"), ErrMismatch)
}

func TestChain_VerificaAmbosFormatos(t *testing.T) {
	chain := Chain{NewBcrypt(bcrypt.MinCost), LegacySHA256{}}

	legacyHash, _ := LegacySHA256{}.Hash("eski-sifre")
	assert.NoError(t, chain.Verify(legacyHash, "eski-sifre"))

	newHash, err := chain.Hash("yeni-sifre")
	require.NoError(t, err)
	assert.NoError(t, chain.Verify(newHash, "yeni-sifre"))
	assert.ErrorIs(t, chain.Verify(newHash, "eski-sifre"), ErrMismatch)
}

func TestFromName(t *testing.T) {
	hash, err := FromName("legacy").Hash("x")
	require.NoError(t, err)
	legacy, _ := LegacySHA256{}.Hash("x")
	assert.Equal(t, legacy, hash)

	hash, err = FromName("bcrypt").Hash("x")
	require.NoError(t, err)
	assert.Contains(t, hash, "$2")
}
