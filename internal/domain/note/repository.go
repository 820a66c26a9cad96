package note

import "context"

type Repository interface {
	List(ctx context.Context, userID int) ([]Note, error)
	Get(ctx context.Context, userID int, id string) (*Note, error)
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, userID int, id string) error
}
