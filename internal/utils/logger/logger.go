package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/config"
)

// New создает логгер в зависимости от окружения:
// local - цветной вывод для терминала, dev - JSON с debug, prod - JSON с info.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal, config.EnvDev, "":
		return newWithLevel(env, slog.LevelDebug)
	default:
		return newWithLevel(env, slog.LevelInfo)
	}
}

// NewCLI - логгер для консольного клиента: пишет в stderr и без --debug показывает
// только предупреждения и ошибки, чтобы не мешать выводу команд.
func NewCLI(env string, debug bool) *slog.Logger {
	if debug {
		return newWithLevel(env, slog.LevelDebug)
	}
	return newWithLevel(env, slog.LevelWarn)
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

func newWithLevel(env string, level slog.Level) *slog.Logger {
	if env == config.EnvLocal || env == "" {
		return setupPrettySlog(level)
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stderr))
}
