package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Verify("correct horse", hash))
	assert.False(t, h.Verify("wrong horse", hash))
	assert.False(t, h.Verify("correct horse", ""))
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewHasher(MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same-password", a))
	assert.True(t, h.Verify("same-password", b))
}

func TestHasher_Cost(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultCost},
		{4, DefaultCost},
		{MinCost, MinCost},
		{11, 11},
		{bcrypt.MaxCost + 1, DefaultCost},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewHasher(tt.in).Cost(), "cost %d", tt.in)
	}

	hash, err := NewHasher(MinCost).Hash("password1")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, MinCost, cost)
}

func TestHasher_EmptyPassword(t *testing.T) {
	_, err := NewHasher(MinCost).Hash("")
	assert.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword(""))
	assert.False(t, ValidatePassword("1234567"))
	assert.True(t, ValidatePassword("12345678"))
}
