package note

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/api/http/middleware/auth"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]note.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]note.Note), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, userID int, id string) (*note.Note, error) {
	args := m.Called(ctx, userID, id)
	// Безопасное приведение nil к указателю
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, d note.Draft) (string, error) {
	args := m.Called(ctx, userID, d)
	return args.String(0), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID int, id string, d note.Draft) error {
	return m.Called(ctx, userID, id, d).Error(0)
}

func (m *MockService) Delete(ctx context.Context, userID int, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

// staticSessions принимает только один токен
type staticSessions struct {
	token  string
	userID int
}

func (s staticSessions) Create(context.Context, int) (string, error) { return s.token, nil }
func (s staticSessions) Revoke(context.Context, string) error        { return nil }
func (s staticSessions) Validate(_ context.Context, token string) (int, error) {
	if token != s.token {
		return 0, session.ErrInvalidSession
	}
	return s.userID, nil
}

const authHeader = "Authorization: Bearer good-token"

func setupAPI(t *testing.T, svc note.Servicer) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	log := slog.Default()
	authMW := auth.New(api, staticSessions{token: "good-token", userID: 7}, log)

	NewHandler(svc, log, huma.Middlewares{authMW.Middleware()}).SetupRoutes(api)
	return api
}

func TestHandler_RequiresBearerToken(t *testing.T) {
	svc := new(MockService)
	api := setupAPI(t, svc)

	resp := api.Get("/api/notes")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Get("/api/notes", "Authorization: Bearer stolen")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	api := setupAPI(t, svc)

	svc.On("List", mock.Anything, 7).Return([]note.Note{
		{ID: "b", Title: "second", Content: "2"},
		{ID: "a", Title: "first", Content: "1"},
	}, nil)

	resp := api.Get("/api/notes", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Notes, 2)
	assert.Equal(t, "b", body.Notes[0].ID)
	assert.Equal(t, "first", body.Notes[1].Title)
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockService)
	api := setupAPI(t, svc)

	svc.On("Create", mock.Anything, 7, note.Draft{Title: "Belanja", Content: "susu"}).Return("new-id", nil)

	resp := api.Post("/api/notes", authHeader, map[string]any{"title": "Belanja", "content": "susu"})
	require.Equal(t, http.StatusCreated, resp.Code)

	var body response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "new-id", body.ID)
	assert.Equal(t, "Ok", body.Status)
}

func TestHandler_Create_RejectsEmptyFields(t *testing.T) {
	svc := new(MockService)
	api := setupAPI(t, svc)

	resp := api.Post("/api/notes", authHeader, map[string]any{"title": "", "content": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: note.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid", err: note.ErrInvalidInput, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			api := setupAPI(t, svc)

			svc.On("Update", mock.Anything, 7, "n1", mock.Anything).Return(tt.err)
			svc.On("Delete", mock.Anything, 7, "n1").Return(tt.err)

			resp := api.Put("/api/notes/n1", authHeader, map[string]any{"title": "t", "content": "c"})
			assert.Equal(t, tt.wantStatus, resp.Code)

			resp = api.Delete("/api/notes/n1", authHeader)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandler_Find(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := auth.WithUserID(context.Background(), 7)

	svc.On("Find", mock.Anything, 7, "n1").Return(&note.Note{ID: "n1", Title: "t", Content: "c"}, nil)

	out, err := h.find(ctx, &idInput{ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, "t", out.Body.Title)

	_, err = h.find(context.Background(), &idInput{ID: "n1"})
	assert.Error(t, err)
}
