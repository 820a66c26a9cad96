package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailValidator_ValidateEmail(t *testing.T) {
	validator := NewEmailValidator()

	tests := []struct {
		name        string
		email       string
		wantErr     bool
		expectedErr string
	}{
		{name: "valid email", email: "a@b.com"},
		{name: "valid with plus", email: "user+notes@example.org"},
		{name: "empty", email: "", wantErr: true, expectedErr: "email is required"},
		{name: "blank", email: "   ", wantErr: true, expectedErr: "email is required"},
		{name: "no at sign", email: "user.name", wantErr: true, expectedErr: "email is badly formatted"},
		{name: "display name form", email: "User <a@b.com>", wantErr: true, expectedErr: "email is badly formatted"},
		{
			name:        "too long",
			email:       strings.Repeat("a", 250) + "@b.com",
			wantErr:     true,
			expectedErr: "email must be at most 254 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedErr, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEmailValidator_ValidatePassword(t *testing.T) {
	validator := NewEmailValidator()

	assert.NoError(t, validator.ValidatePassword("123456"))
	assert.EqualError(t, validator.ValidatePassword("12345"), "password must be at least 6 characters")
	assert.EqualError(t, validator.ValidatePassword(strings.Repeat("x", 73)), "password must be at most 72 bytes")
}

func TestEmailValidator_ValidateRegister(t *testing.T) {
	validator := NewEmailValidator()

	assert.NoError(t, validator.ValidateRegister("a@b.com", "pw1pw1"))

	err := validator.ValidateRegister("bad", "pw1pw1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister("a@b.com", "pw1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")
}
