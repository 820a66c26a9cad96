//регистрация, аутентификация и завершение сессий пользователей;
//хранение заметок пользователя.

//POST /user/register       # Регистрация (публичный)
//POST /user/login          # Логин (публичный)
//POST /user/logout         # Завершение сессии (auth)
//GET  /api/notes           # Список заметок (auth)
//POST /api/notes           # Создать заметку (auth)
//GET  /api/notes/{id}      # Получить заметку (auth)
//PUT  /api/notes/{id}      # Обновить заметку (auth)
//DELETE /api/notes/{id}    # Удалить заметку (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/api/http/health"
	"notekeeper/internal/app/server/api/http/middleware"
	"notekeeper/internal/app/server/api/http/middleware/auth"
	"notekeeper/internal/app/server/api/http/middleware/logger"
	noteAPI "notekeeper/internal/app/server/api/http/note"
	userAPI "notekeeper/internal/app/server/api/http/user"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/session"
	"notekeeper/internal/domain/user"
	"notekeeper/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *health.Handler
	User   *userAPI.Handler
	Note   *noteAPI.Handler
}

// New создает *chi.Mux со всеми операциями, зарегистрированными через huma.Register
func New(storage *postgres.Storage, sessions *session.Service, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Notekeeper API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(API, storage, sessions, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Note.SetupRoutes(API)

	return mux
}

func handlers(API huma.API, storage *postgres.Storage, sessions *session.Service, log *slog.Logger) *Handlers {
	authMW := auth.New(API, sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(storage, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewEmailValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessions, log, middlewares.GetAllAndClear())

	noteRepo := postgres.NewNoteRepository(storage, log)
	noteService := note.NewService(noteRepo, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	noteHandler := noteAPI.NewHandler(noteService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Note:   noteHandler,
	}
}
