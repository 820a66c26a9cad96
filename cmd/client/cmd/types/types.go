package types

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/internal/app/client"
)

type contextKey string

const (
	ClientAppKey contextKey = "client_app"
	OutputKey    contextKey = "output"
)

// Output - глобальные флаги вывода
type Output struct {
	JSON bool
}

// App достает клиент, созданный в PersistentPreRunE корневой команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func JSON(cmd *cobra.Command) bool {
	out, ok := cmd.Context().Value(OutputKey).(Output)
	return ok && out.JSON
}
