package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

// Credential - закешированные данные последнего входа.
type Credential struct {
	ID       int64
	Email    string
	Password string
}

// Sealer шифрует пароль перед записью в базу и расшифровывает при чтении.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// Store - локальный кеш учетных данных в SQLite.
// Каждая операция открывает свое соединение и закрывает его по завершении.
type Store struct {
	path    string
	sealer  Sealer
	timeout time.Duration
	log     *slog.Logger
}

// New создает хранилище. sealer может быть nil, тогда пароль пишется как есть.
// timeout <= 0 отключает ограничение по времени на операцию.
func New(path string, sealer Sealer, timeout time.Duration, log *slog.Logger) *Store {
	return &Store{
		path:    path,
		sealer:  sealer,
		timeout: timeout,
		log:     log.With(slog.String("component", "credential_store")),
	}
}

// InitializeSchema создает таблицу user_credentials, если ее нет. Повторный вызов ничего не меняет.
func (s *Store) InitializeSchema(ctx context.Context) error {
	err := s.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		done := make(chan error, 1)
		go func() { done <- runMigrations(db) }()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		s.log.Error("schema initialization failed", "error", err)
		return mapDBErr("initialize schema", err)
	}

	s.log.Debug("schema ready")
	return nil
}

// SaveCredential добавляет запись. Существующие записи не трогаются.
func (s *Store) SaveCredential(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	stored := password
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(password)
		if err != nil {
			return fmt.Errorf("seal password: %w: %w", ErrStorageUnavailable, err)
		}
		stored = sealed
	}

	err := s.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO user_credentials (email, password) VALUES (?, ?)`,
			email, stored,
		)
		return err
	})
	if err != nil {
		s.log.Error("save credential failed", "error", err)
		return mapDBErr("save credential", err)
	}

	s.log.Debug("credential saved", "email", email)
	return nil
}

// GetCredential возвращает первую запись по id или nil, если записей нет.
func (s *Store) GetCredential(ctx context.Context) (*Credential, error) {
	var c Credential
	found := false

	err := s.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		err := db.QueryRowContext(ctx,
			`SELECT id, email, password FROM user_credentials ORDER BY id LIMIT 1`,
		).Scan(&c.ID, &c.Email, &c.Password)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return nil
	})
	if err != nil {
		s.log.Error("get credential failed", "error", err)
		return nil, mapDBErr("get credential", err)
	}

	if !found {
		return nil, nil
	}

	if s.sealer != nil {
		password, err := s.sealer.Open(c.Password)
		if err != nil {
			s.log.Warn("stored password cannot be opened", "error", err)
			return nil, fmt.Errorf("open password: %w: %w", ErrStorageUnavailable, err)
		}
		c.Password = password
	}

	return &c, nil
}

// ClearCredentials удаляет все записи. На пустой таблице не ошибка.
func (s *Store) ClearCredentials(ctx context.Context) error {
	err := s.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `DELETE FROM user_credentials`)
		return err
	})
	if err != nil {
		s.log.Error("clear credentials failed", "error", err)
		return mapDBErr("clear credentials", err)
	}

	s.log.Debug("credentials cleared")
	return nil
}

// CountCredentials возвращает число строк в таблице. Больше одной строки
// бывает, если вход выполнялся повторно без выхода.
func (s *Store) CountCredentials(ctx context.Context) (int, error) {
	var n int
	err := s.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_credentials`).Scan(&n)
	})
	if err != nil {
		return 0, mapDBErr("count credentials", err)
	}

	return n, nil
}

func (s *Store) withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dsn())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	return fn(ctx, db)
}

func (s *Store) dsn() string {
	return "file:" + s.path + "?_busy_timeout=5000"
}
