package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/note"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client/bootstrap"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Открыть стартовый экран",
	Long: `Определяет стартовый экран по сохраненному входу: список заметок,
если на этом устройстве уже выполнен вход, иначе экран входа.`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, _ []string) error {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}

	entry := app.Start(cmd.Context())

	if types.JSON(cmd) && entry == bootstrap.LoginPage {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"entry_point": string(entry)})
	}

	if entry == bootstrap.LoginPage {
		fmt.Fprintln(cmd.OutOrStdout(), "=== Вход ===")
		fmt.Fprintln(cmd.OutOrStdout(), "Войдите: notekeeper auth login")
		fmt.Fprintln(cmd.OutOrStdout(), "Нет аккаунта? notekeeper auth register")
		return nil
	}

	if !types.JSON(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Вы вошли как %s\n\n", app.CurrentEmail())
	}

	return note.ShowBoard(cmd, app)
}
