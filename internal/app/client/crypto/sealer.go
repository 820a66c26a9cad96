package crypto

import (
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealedPrefix помечает значения, зашифрованные ключом устройства
const sealedPrefix = "v1:"

var (
	ErrMalformed = errors.New("значение не зашифровано ключом устройства")
	ErrDecrypt   = errors.New("не удалось расшифровать значение")
)

// Sealer шифрует короткие строки (сохраненный пароль) ключом устройства.
// XChaCha20-Poly1305 со случайным nonce на каждое значение.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации шифра: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// NewDeviceSealer загружает (или создает) ключ устройства по пути и строит Sealer.
func NewDeviceSealer(keyPath string) (*Sealer, error) {
	key, err := LoadOrCreateDeviceKey(keyPath)
	if err != nil {
		return nil, err
	}
	defer ClearMemory(key)

	return NewSealer(key)
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce, err := GenerateRandomBytes(s.aead.NonceSize())
	if err != nil {
		return "", err
	}

	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(out), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return "", ErrMalformed
	}

	raw, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize+s.aead.Overhead() {
		return "", ErrMalformed
	}

	plaintext, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// UnavailableSealer используется, когда ключ устройства не удалось загрузить.
// Любая операция возвращает Err, поэтому сохраненный пароль считается недоступным.
type UnavailableSealer struct {
	Err error
}

func (u UnavailableSealer) Seal(string) (string, error) {
	return "", u.Err
}

func (u UnavailableSealer) Open(string) (string, error) {
	return "", u.Err
}
