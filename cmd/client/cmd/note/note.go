package note

import (
	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/screen"
)

// NoteCmd - родительская команда для операций с заметками
var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Работа с заметками",
	Long:  `Просмотр, создание, редактирование и удаление заметок. После каждого изменения список загружается заново.`,
}

// ShowBoard загружает список и выводит его целиком
func ShowBoard(cmd *cobra.Command, app *client.App) error {
	board, err := snapshot(cmd, app)
	if err != nil {
		return err
	}
	return render(cmd, board)
}

// snapshot загружает текущий список, чтобы после изменения показать разницу
func snapshot(cmd *cobra.Command, app *client.App) (*screen.Board, error) {
	notes, err := app.ListNotes(cmd.Context())
	if err != nil {
		return nil, err
	}

	board := screen.NewBoard()
	board.Seed(notes)
	return board, nil
}

func refresh(cmd *cobra.Command, app *client.App, board *screen.Board) error {
	notes, err := app.ListNotes(cmd.Context())
	if err != nil {
		return err
	}

	board.Refresh(notes)
	return render(cmd, board)
}

func render(cmd *cobra.Command, board *screen.Board) error {
	if types.JSON(cmd) {
		return board.RenderJSON(cmd.OutOrStdout())
	}
	return board.Render(cmd.OutOrStdout())
}
