package note

import (
	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Показать все заметки",
	Long:    `Загружает заметки с сервера, новые первыми.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		return ShowBoard(cmd, app)
	},
}
