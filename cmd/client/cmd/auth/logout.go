package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client/credential"
)

var logoutYes bool

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из аккаунта",
	Long: `Удаляет сохраненные на устройстве данные входа и завершает сессию на сервере.
Локальные данные удаляются, даже если сервер недоступен.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if !logoutYes {
			ok, err := prompt.Confirm(cmd, "Выйти из аккаунта?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Отменено")
				return nil
			}
		}

		err = app.Logout(cmd.Context())
		if err == nil || !errors.Is(err, credential.ErrStorageUnavailable) {
			fmt.Fprintln(cmd.OutOrStdout(), "Данные входа удалены с устройства")
		}

		return err
	},
}

func init() {
	LogoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "не спрашивать подтверждение")
}
