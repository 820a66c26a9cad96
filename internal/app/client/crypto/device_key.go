package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	keyFilePermissions = 0600
	keyDirPermissions  = 0700
)

var ErrBadKeyFile = errors.New("некорректный файл ключа устройства")

// LoadOrCreateDeviceKey читает ключ устройства, при отсутствии файла создает новый.
// Ключ не покидает устройство: перенос базы на другую машину делает сохраненный пароль нечитаемым.
func LoadOrCreateDeviceKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(key) != chacha20poly1305.KeySize {
			ClearMemory(key)
			return nil, fmt.Errorf("%w: ожидалось %d байт", ErrBadKeyFile, chacha20poly1305.KeySize)
		}
		return key, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("ошибка чтения ключа устройства: %w", err)
	}

	key, err = GenerateRandomBytes(chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), keyDirPermissions); err != nil {
		return nil, fmt.Errorf("ошибка создания директории ключа: %w", err)
	}

	// O_EXCL: параллельно запущенный клиент мог успеть создать ключ первым
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, keyFilePermissions)
	if errors.Is(err, fs.ErrExist) {
		ClearMemory(key)
		return LoadOrCreateDeviceKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка создания ключа устройства: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(key); err != nil {
		return nil, fmt.Errorf("ошибка записи ключа устройства: %w", err)
	}

	return key, nil
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// ClearMemory затирает чувствительные данные
func ClearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
