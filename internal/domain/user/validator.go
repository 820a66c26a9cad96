package user

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	MaxEmailLen    = 254
	MinPasswordLen = 6
	// bcrypt не принимает пароли длиннее 72 байт
	MaxPasswordLen = 72
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

// EmailValidator проверяет адрес почты и ограничения на пароль.
type EmailValidator struct {
	minPasswordLen int
}

// NewEmailValidator создает новый валидатор
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{
		minPasswordLen: MinPasswordLen,
	}
}

// ValidateRegister валидирует данные для регистрации
func (v *EmailValidator) ValidateRegister(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

// ValidateEmail валидирует email
func (v *EmailValidator) ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must be at most %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email is badly formatted")
	}

	return nil
}

// ValidatePassword валидирует пароль
func (v *EmailValidator) ValidatePassword(password string) error {
	if len(password) < v.minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", v.minPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}

	return nil
}
