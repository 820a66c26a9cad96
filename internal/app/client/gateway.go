package client

import (
	"context"
	"errors"

	"notekeeper/internal/domain/note"
)

var (
	// ErrAuth - сервис аутентификации отказал; текст причины сохраняется в цепочке
	ErrAuth = errors.New("ошибка аутентификации")
	// ErrUnauthorized - у запроса к заметкам нет действующей сессии
	ErrUnauthorized = errors.New("сессия недействительна, выполните вход: notekeeper auth login")
)

// Identity - результат успешного входа
type Identity struct {
	Email string
	Token string
}

type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
}

// NoteStore - удаленное хранилище заметок. Конфликты не отслеживаются, последняя запись выигрывает.
type NoteStore interface {
	List(ctx context.Context) ([]note.Note, error)
	Create(ctx context.Context, title, content string) (string, error)
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
}

// Remote объединяет оба сервиса одного сервера и общую для них сессию
type Remote interface {
	AuthGateway
	NoteStore
	SetToken(token string)
	HealthCheck(ctx context.Context) error
}
