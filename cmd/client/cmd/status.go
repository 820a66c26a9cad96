package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Показать состояние клиента",
	Long:  `Стартовый экран, число сохраненных записей входа, наличие сессии и доступность сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		st := app.Status(cmd.Context())

		if types.JSON(cmd) {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Стартовый экран: %s\n", st.EntryPoint)
		if st.Email != "" {
			fmt.Fprintf(out, "Аккаунт:         %s\n", st.Email)
		}

		switch {
		case st.CredentialRows < 0:
			fmt.Fprintln(out, "Локальные данные: недоступны")
		case st.CredentialRows > 1:
			fmt.Fprintf(out, "Локальные данные: %d записей (используется первая; выполните auth logout для очистки)\n", st.CredentialRows)
		default:
			fmt.Fprintf(out, "Локальные данные: %d записей\n", st.CredentialRows)
		}

		session := "нет"
		if st.Authenticated {
			session = "есть"
		}
		fmt.Fprintf(out, "Сессия:          %s\n", session)

		fmt.Fprintf(out, "Сервер:          %s\n", st.Server)
		if st.ServerError != "" {
			fmt.Fprintf(out, "                 %s\n", st.ServerError)
		}

		return nil
	},
}
