// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/note"
	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в Notekeeper",
	Long: `Аутентификация на сервере Notekeeper.

После входа данные сохраняются на этом устройстве, и следующий запуск
сразу открывает список заметок. Выйти: notekeeper auth logout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Вход ===")

		email := loginEmail
		if email == "" {
			if email, err = prompt.Line(cmd, "Email: "); err != nil {
				return err
			}
		}

		password, err := prompt.Password(cmd, "Пароль: ")
		if err != nil {
			return err
		}

		if err := app.SignIn(cmd.Context(), email, password); err != nil {
			return err
		}

		fmt.Fprintln(out, "✅ Вход выполнен успешно!")
		fmt.Fprintln(out)

		if err := note.ShowBoard(cmd, app); err != nil {
			fmt.Fprintf(out, "⚠️  Не удалось загрузить заметки: %v\n", err)
		}

		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email аккаунта")
}
