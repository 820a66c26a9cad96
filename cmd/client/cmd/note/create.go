package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/domain/note"
)

var (
	createTitle   string
	createContent string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать заметку",
	Long: `Создает заметку. Если --title или --content не указаны, они запрашиваются интерактивно.
Заголовок и текст не могут быть пустыми.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		title, content := createTitle, createContent
		if title == "" {
			if title, err = prompt.Line(cmd, "Заголовок: "); err != nil {
				return err
			}
		}
		if content == "" {
			if content, err = prompt.Line(cmd, "Текст: "); err != nil {
				return err
			}
		}

		if err := (note.Draft{Title: title, Content: content}).Validate(); err != nil {
			return fmt.Errorf("заголовок и текст не могут быть пустыми: %w", err)
		}

		board, err := snapshot(cmd, app)
		if err != nil {
			return err
		}

		id, err := app.CreateNote(cmd.Context(), title, content)
		if err != nil {
			return err
		}

		if !types.JSON(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Заметка создана: %s\n\n", id)
		}

		return refresh(cmd, app, board)
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "заголовок заметки")
	CreateCmd.Flags().StringVarP(&createContent, "content", "c", "", "текст заметки")
}
