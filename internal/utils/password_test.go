package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasherCost(t *testing.T) {
	t.Parallel()

	require.Equal(t, 12, NewPasswordHasher(0).Cost)
	require.Equal(t, 12, NewPasswordHasher(99).Cost)
	require.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).Cost)
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"unicode password", "contraseña-ñandú"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$2a$"))

			ok, err := h.Verify(tt.password, hash)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = h.Verify(tt.password+"x", hash)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestHashStoresCost(t *testing.T) {
	t.Parallel()

	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.MinCost, cost)
}

func TestVerifyMalformedHashIsError(t *testing.T) {
	t.Parallel()

	ok, err := NewPasswordHasher(bcrypt.MinCost).Verify("pw", "not-a-bcrypt-hash")
	require.Error(t, err)
	require.False(t, ok)
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	t.Parallel()

	_, err := NewPasswordHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	require.Error(t, err)
}
