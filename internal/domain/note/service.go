package note

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Note, error)
	Find(ctx context.Context, userID int, id string) (*Note, error)
	Create(ctx context.Context, userID int, d Draft) (string, error)
	Update(ctx context.Context, userID int, id string, d Draft) error
	Delete(ctx context.Context, userID int, id string) error
}

// Service - бизнес-логика заметок на сервере. Конфликты не отслеживаются:
// последняя запись выигрывает.
type Service struct {
	repo  Repository
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		log:   log.With(slog.String("component", "note_service")),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Note, error) {
	notes, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list notes", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}

	if notes == nil {
		notes = []Note{}
	}

	return notes, nil
}

func (s *Service) Find(ctx context.Context, userID int, id string) (*Note, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	n, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to get note", "user_id", userID, "note_id", id, "error", err)
		}
		return nil, err
	}

	return n, nil
}

func (s *Service) Create(ctx context.Context, userID int, d Draft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	now := s.now().UTC()
	n := &Note{
		ID:        s.newID(),
		UserID:    userID,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error("failed to create note", "user_id", userID, "error", err)
		return "", fmt.Errorf("create note: %w", err)
	}

	s.log.Debug("note created", "user_id", userID, "note_id", n.ID)
	return n.ID, nil
}

func (s *Service) Update(ctx context.Context, userID int, id string, d Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if !validID(id) {
		return ErrNotFound
	}

	n := &Note{
		ID:        id,
		UserID:    userID,
		Title:     d.Title,
		Content:   d.Content,
		UpdatedAt: s.now().UTC(),
	}

	if err := s.repo.Update(ctx, n); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.log.Error("failed to update note", "user_id", userID, "note_id", id, "error", err)
		return fmt.Errorf("update note: %w", err)
	}

	return nil
}

func (s *Service) Delete(ctx context.Context, userID int, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.log.Error("failed to delete note", "user_id", userID, "note_id", id, "error", err)
		return fmt.Errorf("delete note: %w", err)
	}

	return nil
}

// validID отсекает идентификаторы, которые не могут существовать в хранилище.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
