package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const (
	DefaultTTL = 24 * time.Hour

	tokenSize = 32
)

var ErrInvalidSession = errors.New("invalid session")

type Servicer interface {
	Create(ctx context.Context, userID int) (string, error)
	Validate(ctx context.Context, token string) (int, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	ttl  time.Duration
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Service{
		repo: repo,
		ttl:  ttl,
		log:  log.With(slog.String("component", "session_service")),
		now:  time.Now,
	}
}

// Create выдает новый bearer-токен пользователю.
func (s *Service) Create(ctx context.Context, userID int) (string, error) {
	raw := make([]byte, tokenSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	err := s.repo.Create(ctx, Session{
		UserID:    userID,
		TokenHash: hashToken(token),
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

func (s *Service) Validate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidSession
	}

	return s.repo.Lookup(ctx, hashToken(token), s.now())
}

// Revoke удаляет сессию. Отзыв несуществующей сессии не считается ошибкой.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if err := s.repo.Delete(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// PurgeExpired удаляет сессии с истекшим сроком.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}

	return n, nil
}

// RunPurger чистит истекшие сессии раз в interval до отмены ctx.
func (s *Service) RunPurger(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.log.Error("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				s.log.Info("expired sessions purged", slog.Int64("count", n))
			}
		}
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
