package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/domain/note"
)

var (
	editTitle   string
	editContent string
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить заметку",
	Long: `Изменяет заголовок и/или текст заметки. Не указанное поле остается прежним.
Если заметку уже удалили на другом устройстве, команда завершится ошибкой.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
			return fmt.Errorf("укажите --title и/или --content")
		}

		id := args[0]

		board, err := snapshot(cmd, app)
		if err != nil {
			return err
		}

		current, ok := board.Find(id)
		if !ok {
			return fmt.Errorf("%s: %w", id, note.ErrNotFound)
		}

		title, content := current.Title, current.Content
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("content") {
			content = editContent
		}

		if err := app.UpdateNote(cmd.Context(), id, title, content); err != nil {
			return err
		}

		if !types.JSON(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Заметка обновлена: %s\n\n", id)
		}

		return refresh(cmd, app, board)
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "новый заголовок")
	EditCmd.Flags().StringVarP(&editContent, "content", "c", "", "новый текст")
}
