package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"notekeeper/internal/domain/note"
)

type NoteRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewNoteRepository(db *Storage, log *slog.Logger) *NoteRepository {
	return &NoteRepository{
		db:  db,
		log: log.With(slog.String("component", "note_repository")),
	}
}

func (r *NoteRepository) List(ctx context.Context, userID int) ([]note.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]note.Note, 0)
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, userID int, id string) (*note.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2`

	var n note.Note
	err := r.db.Pool().QueryRow(ctx, query, id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, note.ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *note.Note) error {
	const query = `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Pool().Exec(ctx, query, n.ID, n.UserID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	return nil
}

func (r *NoteRepository) Update(ctx context.Context, n *note.Note) error {
	const query = `
		UPDATE notes
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`

	tag, err := r.db.Pool().Exec(ctx, query, n.Title, n.Content, n.UpdatedAt, n.ID, n.UserID)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return note.ErrNotFound
	}

	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, userID int, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return note.ErrNotFound
	}

	return nil
}
