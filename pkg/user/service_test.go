package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("basic hashing", func(t *testing.T) {
		hash, err := hashPassword("mySecurePassword123")

		require.NoError(t, err)
		require.NotEmpty(t, hash)
		require.Len(t, strings.Split(hash, "."), 2)
	})

	t.Run("hash uniqueness", func(t *testing.T) {
		password := "samePassword"

		hash1, err := hashPassword(password)
		require.NoError(t, err)

		hash2, err := hashPassword(password)
		require.NoError(t, err)

		require.NotEqual(t, hash1, hash2)
	})
}

func TestComparePasswords(t *testing.T) {
	t.Run("successful match", func(t *testing.T) {
		password := "correctPassword123"
		hash, err := hashPassword(password)
		require.NoError(t, err)

		match, err := comparePasswords(hash, password)

		require.NoError(t, err)
		require.True(t, match)
	})

	t.Run("incorrect password", func(t *testing.T) {
		hash, err := hashPassword("correctPassword123")
		require.NoError(t, err)

		match, err := comparePasswords(hash, "wrongPassword123")

		require.NoError(t, err)
		require.False(t, match)
	})

	t.Run("invalid hash format", func(t *testing.T) {
		match, err := comparePasswords("invalidHash", "anyPassword")

		require.Error(t, err)
		require.False(t, match)
		require.Contains(t, err.Error(), "wrong password/salt format")
	})

	t.Run("invalid hex salt", func(t *testing.T) {
		match, err := comparePasswords("abcdef.not-hex!!", "anyPassword")

		require.Error(t, err)
		require.False(t, match)
	})
}
