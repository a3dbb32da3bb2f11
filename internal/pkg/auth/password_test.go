package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		personal []string
		want     []error
	}{
		{name: "valid", password: "internship2024", personal: []string{"mgarcia"}},
		{name: "too short", password: "ab1", want: []error{ErrPasswordTooShort}},
		{name: "longest bcrypt accepts", password: strings.Repeat("a1", 36)},
		{name: "too long for bcrypt", password: strings.Repeat("a1", 40), want: []error{ErrPasswordTooLong}},
		{name: "multibyte counted in bytes", password: "ñ1" + strings.Repeat("ñ", 35), want: []error{ErrPasswordTooLong}},
		{name: "numeric only", password: "12345678", want: []error{ErrPasswordEntirelyDigs}},
		{name: "no digit", password: "onlyletters", want: []error{ErrPasswordNoDigit}},
		{name: "contains username", password: "mgarcia2024", personal: []string{"MGarcia"}, want: []error{ErrPasswordTooSimilar}},
		{name: "short personal values ignored", password: "xy-secret-9", personal: []string{"xy", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.personal...)
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, w := range tt.want {
				assert.True(t, errors.Is(err, w), "expected %v in %v", w, err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { BcryptCost = 12 })

	hash, err := HashPassword("internship2024")
	require.NoError(t, err)
	assert.NotEqual(t, "internship2024", hash)
	assert.True(t, CheckPassword(hash, "internship2024"))
	assert.False(t, CheckPassword(hash, "internship2025"))
}
