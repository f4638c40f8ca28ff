package auth

import (
	"strings"
	"testing"

	"ratehub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() *bcryptHasher {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4}, // minimum cost keeps tests fast
	})

	return hasher.(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	password := "StrongPass1!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPass1!", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Abcdef1!", false},
		{"valid at max length", "Abcdefghijklmn1!", false},
		{"too short", "Ab1!", true},
		{"too long", "A" + strings.Repeat("a", 15) + "1!", true},
		{"missing uppercase", "abcdefg1!", true},
		{"missing special character", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBcryptHasher_StrengthUsesConfiguredBounds(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength: 4,
			MaxLength: 0, // unbounded
		},
	})

	assert.NoError(t, hasher.ValidatePasswordStrength("abcd"))
	assert.NoError(t, hasher.ValidatePasswordStrength(strings.Repeat("a", 50)))
	assert.Error(t, hasher.ValidatePasswordStrength("abc"))
}
