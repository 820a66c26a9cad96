package note

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Note), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, userID int, id string) (*Note, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Note), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, n *Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, n *Note) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID int, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

const (
	noteID    = "4f5c1a36-9a0e-4c0e-9a51-2f4a3c5e8b11"
	missingID = "0b7d6b0e-3f0c-4a57-8b9e-6a1d2c3e4f50"
)

func newTestService(repo Repository) *Service {
	s := NewService(repo, slog.Default())
	s.now = func() time.Time { return time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC) }
	s.newID = func() string { return noteID }
	return s
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{name: "valid", draft: Draft{Title: "Belanja", Content: "susu, roti"}},
		{name: "empty title", draft: Draft{Title: "", Content: "x"}, wantErr: true},
		{name: "blank title", draft: Draft{Title: "   ", Content: "x"}, wantErr: true},
		{name: "empty content", draft: Draft{Title: "x", Content: ""}, wantErr: true},
		{name: "blank content", draft: Draft{Title: "x", Content: "\n\t"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Create(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *Note) bool {
		return n.ID == noteID && n.UserID == 5 && n.Title == "t" && n.Content == "c" &&
			n.CreatedAt.Equal(n.UpdatedAt) && !n.CreatedAt.IsZero()
	})).Return(nil)

	id, err := service.Create(context.Background(), 5, Draft{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, noteID, id)
	repo.AssertExpectations(t)
}

func TestService_Create_InvalidDraft(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	_, err := service.Create(context.Background(), 5, Draft{Title: "t"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("List", mock.Anything, 5).Return(nil, nil)

	notes, err := service.List(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestService_UpdateDelete_NotFound(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("Update", mock.Anything, mock.Anything).Return(ErrNotFound)
	repo.On("Delete", mock.Anything, 5, missingID).Return(ErrNotFound)

	err := service.Update(context.Background(), 5, missingID, Draft{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Delete(context.Background(), 5, missingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("Delete", mock.Anything, 5, noteID).Return(errors.New("connection reset"))

	err := service.Delete(context.Background(), 5, noteID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete note")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestService_MalformedIDIsNotFound(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)
	ctx := context.Background()

	_, err := service.Find(ctx, 5, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Update(ctx, 5, "not-a-uuid", Draft{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Delete(ctx, 5, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	repo.AssertExpectations(t)
}
