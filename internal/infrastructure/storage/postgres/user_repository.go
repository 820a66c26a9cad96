package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"notekeeper/internal/domain/user"
)

// uniqueViolation - код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

func NewUserRepository(db *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With(slog.String("component", "user_repository")),
	}
}

type UserRepository struct {
	db  *Storage
	log *slog.Logger
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (int, error) {
	var userID int
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, passwordHash).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, user.ErrAlreadyExists
		}
		return 0, err
	}

	return userID, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.Pool().QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, user.ErrUserNotFound
		}
		return u, fmt.Errorf("find user: %w", err)
	}

	return u, nil
}
