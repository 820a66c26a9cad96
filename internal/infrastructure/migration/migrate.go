package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// postgres:// и file:// регистрируются через blank import
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/config"
)

var ErrNoMigrationsPath = errors.New("migrations path is empty")

// Migrator - то, что нужно от migrate.Migrate.
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// Engine создает мигратор. В тестах подменяется, чтобы не трогать ФС и БД.
type Engine func(sourceURL, databaseURL string) (Migrator, error)

type Runner struct {
	sourceURL   string
	databaseURL string
	engine      Engine
	log         *slog.Logger
}

func NewRunner(cfg *config.Config, engine Engine, log *slog.Logger) *Runner {
	if engine == nil {
		engine = DefaultEngine
	}

	return &Runner{
		sourceURL:   "file://" + cfg.DB.Migrations,
		databaseURL: cfg.DB.DatabaseURI,
		engine:      engine,
		log:         log.With(slog.String("component", "migration")),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up применяет все миграции схемы users/sessions/notes.
// Отсутствие новых миграций ошибкой не считается.
func (r *Runner) Up() (err error) {
	if r.sourceURL == "file://" {
		return ErrNoMigrationsPath
	}

	m, err := r.engine(r.sourceURL, r.databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations %s: %w", r.sourceURL, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close migrator: %w", closeErr))
		}
	}()

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		r.log.Debug("schema is up to date")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", version)
	}

	r.log.Info("schema migrated", slog.Uint64("version", uint64(version)))

	return nil
}
