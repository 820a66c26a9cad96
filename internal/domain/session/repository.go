package session

import (
	"context"
	"time"
)

// Session - запись о выданном токене. Сам токен не хранится, только его sha256.
type Session struct {
	UserID    int
	TokenHash string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	// Lookup возвращает владельца сессии, действующей на момент now.
	Lookup(ctx context.Context, tokenHash string, now time.Time) (int, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
