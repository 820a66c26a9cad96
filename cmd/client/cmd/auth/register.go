// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/domain/user"
)

var registerEmail string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Notekeeper.

Пароль должен содержать минимум 6 символов. После регистрации выполните вход.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== Регистрация нового пользователя ===")

		email := registerEmail
		if email == "" {
			if email, err = prompt.Line(cmd, "Email: "); err != nil {
				return err
			}
		}

		password, err := prompt.Password(cmd, "Пароль: ")
		if err != nil {
			return err
		}

		passwordConfirm, err := prompt.Password(cmd, "Повторите пароль: ")
		if err != nil {
			return err
		}

		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		if err := user.NewEmailValidator().ValidateRegister(email, password); err != nil {
			return err
		}

		if err := app.SignUp(cmd.Context(), email, password); err != nil {
			return err
		}

		fmt.Fprintln(out, "✅ Регистрация успешно завершена!")
		fmt.Fprintln(out, "Теперь войдите в систему: notekeeper auth login")

		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email нового аккаунта")
}
