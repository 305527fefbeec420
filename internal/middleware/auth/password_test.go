package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.Error(t, VerifyPassword(hash, "battery staple"))
}

func TestHashPassword_LongInput(t *testing.T) {
	long := strings.Repeat("A", 200)
	hash, err := HashPassword(long)
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword(hash, long))
}

func TestCompareDummy(t *testing.T) {
	assert.NotPanics(t, func() {
		CompareDummy("ABCDEFGHIJKL")
		CompareDummy(strings.Repeat("Z", 500))
	})
	assert.True(t, strings.HasPrefix(dummyHash, "$2a$"))
}
