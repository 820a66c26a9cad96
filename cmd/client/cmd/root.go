// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "notekeeper",
	Short: "Notekeeper - личные заметки с синхронизацией",
	Long: `Notekeeper хранит ваши заметки на сервере и помнит вход на этом устройстве.

Без подкоманды открывает стартовый экран: список заметок, если вход уже
выполнен, или подсказку для входа.`,
	PersistentPreRunE: setupApp,
	RunE:              runStart,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log := logger.NewCLI(cfg.Env, debug)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.OutputKey, types.Output{JSON: jsonOutput})
	cmd.SetContext(ctx)

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".notekeeper"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Notekeeper")
}
