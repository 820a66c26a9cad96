package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/domain/note"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Удалить заметку",
	Long:    `Удаляет заметку после подтверждения. --yes пропускает подтверждение.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id := args[0]

		board, err := snapshot(cmd, app)
		if err != nil {
			return err
		}

		if !board.MarkLeaving(id) {
			return fmt.Errorf("%s: %w", id, note.ErrNotFound)
		}

		if !deleteYes {
			if !types.JSON(cmd) {
				if err := render(cmd, board); err != nil {
					return err
				}
			}

			ok, err := prompt.Confirm(cmd, "\nУдалить заметку "+id+"?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Отменено")
				return nil
			}
		}

		if err := app.DeleteNote(cmd.Context(), id); err != nil {
			return err
		}

		if !types.JSON(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Заметка удалена: %s\n\n", id)
		}

		return refresh(cmd, app, board)
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
