// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"ratehub/config"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	strength := config.DefaultPasswordStrength()
	if cfg != nil && cfg.PasswordStrength != nil {
		strength = cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, strength: strength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength verifies the plaintext password against the
// configured policy. The platform default is 8-16 characters with at least
// one uppercase letter and one special character.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	runes := []rune(password)

	if len(runes) < h.strength.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too short")
	}
	if h.strength.MaxLength > 0 && len(runes) > h.strength.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("password is too long")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.strength.RequireUppercase && !hasUpper {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs at least one uppercase letter")
	}
	if h.strength.RequireLowercase && !hasLower {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs at least one lowercase letter")
	}
	if h.strength.RequireNumbers && !hasNumber {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs at least one digit")
	}
	if h.strength.RequireSpecial && !hasSpecial {
		return domainerrors.ErrPasswordStrength.WithDetails("password needs at least one special character")
	}

	return nil
}
