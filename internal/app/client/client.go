package client

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/bootstrap"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/app/client/credential"
	"notekeeper/internal/app/client/crypto"
	"notekeeper/internal/domain/note"
)

type CredentialStore interface {
	bootstrap.CredentialStore
	SaveCredential(ctx context.Context, email, password string) error
	ClearCredentials(ctx context.Context) error
	CountCredentials(ctx context.Context) (int, error)
}

type App struct {
	config *config.Config
	log    *slog.Logger
	store  CredentialStore
	remote Remote
	boot   *bootstrap.Bootstrapper
}

// Status - сводка для команды status
type Status struct {
	EntryPoint     bootstrap.EntryPoint `json:"entry_point"`
	Email          string               `json:"email,omitempty"`
	CredentialRows int                  `json:"credential_rows"`
	Authenticated  bool                 `json:"authenticated"`
	Server         string               `json:"server"`
	ServerError    string               `json:"server_error,omitempty"`
}

// New собирает клиент с локальным SQLite хранилищем и HTTP клиентом сервера
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	var sealer credential.Sealer
	deviceSealer, err := crypto.NewDeviceSealer(cfg.DeviceKeyPath)
	if err != nil {
		// без ключа хранилище недоступно, но запуск продолжается: стартовый экран будет LoginPage
		log.Warn("ключ устройства недоступен", "path", cfg.DeviceKeyPath, "error", err)
		sealer = crypto.UnavailableSealer{Err: err}
	} else {
		sealer = deviceSealer
	}

	remote, err := NewHTTPClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	store := credential.New(cfg.DataPath, sealer, cfg.StorageTimeout, log)

	return NewApp(cfg, log, store, remote), nil
}

func NewApp(cfg *config.Config, log *slog.Logger, store CredentialStore, remote Remote) *App {
	app := &App{
		config: cfg,
		log:    log.With(slog.String("component", "app")),
		store:  store,
		remote: remote,
		boot: bootstrap.New(store, bootstrap.Options{
			StepTimeout: cfg.StorageTimeout,
			InitRetries: cfg.InitRetries,
		}, log),
	}

	if token, err := app.GetToken(); err == nil && token != "" {
		remote.SetToken(token)
		app.log.Debug("токен загружен из файла")
	}

	return app
}

// Start определяет стартовый экран. Решение принимается один раз за процесс.
func (a *App) Start(ctx context.Context) bootstrap.EntryPoint {
	return a.boot.Resolve(ctx)
}

// CurrentEmail - email из закешированной записи, известен после Start
func (a *App) CurrentEmail() string {
	return a.boot.Email()
}

// SignIn проверяет учетные данные на сервере и кеширует их локально.
// При отказе сервера локальное хранилище не меняется.
func (a *App) SignIn(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: email и пароль обязательны", credential.ErrInvalidInput)
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	identity, err := a.remote.SignIn(reqCtx, email, password)
	if err != nil {
		return err
	}

	if err := a.SaveToken(identity.Token); err != nil {
		return err
	}

	if err := a.cacheCredential(ctx, email, password); err != nil {
		return fmt.Errorf("вход выполнен, но данные не сохранены локально: %w", err)
	}

	a.log.Info("вход выполнен", "email", identity.Email)
	return nil
}

// SignUp регистрирует пользователя и кеширует учетные данные. Дальше пользователь
// попадает на экран входа.
func (a *App) SignUp(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: email и пароль обязательны", credential.ErrInvalidInput)
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	if err := a.remote.SignUp(reqCtx, email, password); err != nil {
		return err
	}

	if err := a.cacheCredential(ctx, email, password); err != nil {
		return fmt.Errorf("регистрация выполнена, но данные не сохранены локально: %w", err)
	}

	a.log.Info("пользователь зарегистрирован", "email", email)
	return nil
}

func (a *App) cacheCredential(ctx context.Context, email, password string) error {
	if err := a.store.InitializeSchema(ctx); err != nil {
		return err
	}
	return a.store.SaveCredential(ctx, email, password)
}

// Logout очищает локальный кеш, затем завершает сессию на сервере и удаляет токен.
// Локальные данные удаляются даже если сервер недоступен; ошибка сервера возвращается.
func (a *App) Logout(ctx context.Context) error {
	clearErr := a.store.ClearCredentials(ctx)
	if clearErr != nil {
		a.log.Error("не удалось очистить локальные данные", "error", clearErr)
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	signOutErr := a.remote.SignOut(reqCtx)
	if signOutErr != nil {
		a.log.Warn("сервер не завершил сессию", "error", signOutErr)
	}

	tokenErr := a.ClearToken()

	return errors.Join(clearErr, signOutErr, tokenErr)
}

func (a *App) ListNotes(ctx context.Context) ([]note.Note, error) {
	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	return a.remote.List(reqCtx)
}

func (a *App) CreateNote(ctx context.Context, title, content string) (string, error) {
	if err := (note.Draft{Title: title, Content: content}).Validate(); err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	return a.remote.Create(reqCtx, title, content)
}

func (a *App) UpdateNote(ctx context.Context, id, title, content string) error {
	if err := (note.Draft{Title: title, Content: content}).Validate(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	return a.remote.Update(reqCtx, id, title, content)
}

func (a *App) DeleteNote(ctx context.Context, id string) error {
	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	return a.remote.Delete(reqCtx, id)
}

// Status собирает состояние клиента. Ошибки хранилища и сервера попадают в отчет, а не в err.
func (a *App) Status(ctx context.Context) Status {
	st := Status{
		EntryPoint: a.Start(ctx),
		Email:      a.CurrentEmail(),
		Server:     "OK",
	}

	if n, err := a.store.CountCredentials(ctx); err == nil {
		st.CredentialRows = n
	} else {
		a.log.Warn("не удалось посчитать записи", "error", err)
		st.CredentialRows = -1
	}

	if token, err := a.GetToken(); err == nil && token != "" {
		st.Authenticated = true
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	if err := a.remote.HealthCheck(reqCtx); err != nil {
		st.Server = "недоступен"
		st.ServerError = err.Error()
	}

	return st
}

// GetToken возвращает сохраненный токен или пустую строку, если входа не было
func (a *App) GetToken() (string, error) {
	data, err := os.ReadFile(a.config.TokenPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	a.remote.SetToken(token)
	return nil
}

func (a *App) ClearToken() error {
	a.remote.SetToken("")

	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}
