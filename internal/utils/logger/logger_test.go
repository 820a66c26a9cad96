package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{name: "local environment", env: config.EnvLocal, expectedLevel: slog.LevelDebug},
		{name: "empty environment", env: "", expectedLevel: slog.LevelDebug},
		{name: "dev environment", env: config.EnvDev, expectedLevel: slog.LevelDebug},
		{name: "prod environment", env: config.EnvProd, expectedLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestNewCLI(t *testing.T) {
	ctx := context.Background()

	quiet := NewCLI(config.EnvLocal, false)
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))
	assert.True(t, quiet.Enabled(ctx, slog.LevelWarn))

	verbose := NewCLI(config.EnvProd, true)
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With(slog.String("component", "test"))

	log.Debug("hidden")
	log.Info("credential saved", "email", "a@b.com")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "credential saved")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"email": "a@b.com"`)
}
