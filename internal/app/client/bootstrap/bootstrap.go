package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/credential"
)

type State int

const (
	Pending State = iota
	ResolvedMain
	ResolvedLogin
)

func (s State) String() string {
	switch s {
	case ResolvedMain:
		return "resolved_main"
	case ResolvedLogin:
		return "resolved_login"
	default:
		return "pending"
	}
}

// EntryPoint - экран, с которого начинается навигация
type EntryPoint string

const (
	Unresolved EntryPoint = ""
	MainPage   EntryPoint = "MainPage"
	LoginPage  EntryPoint = "LoginPage"
)

const (
	DefaultStepTimeout     = 5 * time.Second
	DefaultInitRetries     = 3
	defaultInitialInterval = 100 * time.Millisecond
)

type CredentialStore interface {
	InitializeSchema(ctx context.Context) error
	GetCredential(ctx context.Context) (*credential.Credential, error)
}

type Options struct {
	// StepTimeout ограничивает каждый шаг (инициализация схемы, чтение записи)
	StepTimeout time.Duration
	// InitRetries - сколько всего попыток InitializeSchema
	InitRetries int
	// RetryInterval - пауза перед второй попыткой, дальше растет экспоненциально
	RetryInterval time.Duration
}

// Bootstrapper решает, какой экран показать при старте. Решение принимается один раз за процесс.
type Bootstrapper struct {
	store CredentialStore
	opts  Options
	log   *slog.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
	email string
}

func New(store CredentialStore, opts Options, log *slog.Logger) *Bootstrapper {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = DefaultStepTimeout
	}
	if opts.InitRetries <= 0 {
		opts.InitRetries = DefaultInitRetries
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultInitialInterval
	}

	return &Bootstrapper{
		store: store,
		opts:  opts,
		log:   log.With(slog.String("component", "bootstrapper")),
	}
}

// Resolve выполняет инициализацию и возвращает точку входа. Повторные вызовы
// возвращают первое решение без обращения к хранилищу.
func (b *Bootstrapper) Resolve(ctx context.Context) EntryPoint {
	b.once.Do(func() {
		state, email := b.resolve(ctx)

		b.mu.Lock()
		b.state = state
		b.email = email
		b.mu.Unlock()

		b.log.Info("entry point resolved", "state", state.String())
	})

	return b.EntryPoint()
}

func (b *Bootstrapper) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Email возвращает email из закешированной записи, если точка входа - MainPage.
func (b *Bootstrapper) Email() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.email
}

func (b *Bootstrapper) EntryPoint() EntryPoint {
	switch b.State() {
	case ResolvedMain:
		return MainPage
	case ResolvedLogin:
		return LoginPage
	default:
		return Unresolved
	}
}

func (b *Bootstrapper) resolve(ctx context.Context) (state State, email string) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("bootstrap panicked", "panic", fmt.Sprint(r))
			state, email = ResolvedLogin, ""
		}
	}()

	if err := b.initSchema(ctx); err != nil {
		// хранилище считается пустым, запись не читаем
		b.log.Warn("schema initialization failed", "error", err)
		return ResolvedLogin, ""
	}

	stepCtx, cancel := context.WithTimeout(ctx, b.opts.StepTimeout)
	defer cancel()

	c, err := b.store.GetCredential(stepCtx)
	if err != nil {
		b.log.Warn("reading cached credential failed", "error", err)
		return ResolvedLogin, ""
	}

	if c == nil {
		return ResolvedLogin, ""
	}

	return ResolvedMain, c.Email
}

func (b *Bootstrapper) initSchema(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = b.opts.RetryInterval

	attempt := 0
	op := func() error {
		attempt++
		stepCtx, cancel := context.WithTimeout(ctx, b.opts.StepTimeout)
		defer cancel()

		return b.store.InitializeSchema(stepCtx)
	}

	notify := func(err error, wait time.Duration) {
		b.log.Debug("retrying schema initialization", "attempt", attempt, "wait", wait, "error", err)
	}

	return backoff.RetryNotify(op,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(b.opts.InitRetries-1)), ctx),
		notify,
	)
}
