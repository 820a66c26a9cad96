package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, email, password string) (int, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With(slog.String("component", "user_service")),
	}
}

func (s *Service) Register(ctx context.Context, email, password string) (int, error) {
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("validation failed", "email", email, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return 0, err
		}
		s.log.Error("failed to create user", "email", email, "error", err)
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)
	return id, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.validator.ValidateEmail(email); err != nil {
		return User{}, ErrUserNotFound
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
