package credential

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrInvalidInput - пустой email или пароль; хранилище не изменяется
	ErrInvalidInput = errors.New("invalid credential input")
	// ErrStorageUnavailable - база не открылась, запрос не выполнился или истек таймаут
	ErrStorageUnavailable = errors.New("credential storage unavailable")
)

// mapDBErr приводит ошибку драйвера к ошибкам пакета, сохраняя исходную причину в цепочке.
func mapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}

	sErr := sqlite3.Error{}
	if errors.As(err, &sErr) && sErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
