package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultConfigDir      = ".notekeeper"
	defaultStorageTimeout = 5
	defaultRequestTimeout = 15
	defaultInitRetries    = 3

	dataFileName      = "credentials.db"
	tokenFileName     = "token"
	deviceKeyFileName = "device.key"
)

type Config struct {
	Env            string
	ServerAddress  string
	LogLevel       string
	ConfigDir      string
	DataPath       string
	TokenPath      string
	DeviceKeyPath  string
	EnableTLS      bool
	CACertPath     string
	StorageTimeout time.Duration
	RequestTimeout time.Duration
	InitRetries    int
}

// MustLoad загружает конфигурацию клиента и завершает работу при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env (если есть), переменные окружения и уже подключенный к viper файл конфигурации.
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", EnvLocal)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("STORAGE_TIMEOUT_SECONDS", defaultStorageTimeout)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	viper.SetDefault("INIT_RETRIES", defaultInitRetries)

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	cfg := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataPath:       pathOr(viper.GetString("DATA_PATH"), configDir, dataFileName),
		TokenPath:      pathOr(viper.GetString("TOKEN_PATH"), configDir, tokenFileName),
		DeviceKeyPath:  pathOr(viper.GetString("DEVICE_KEY_PATH"), configDir, deviceKeyFileName),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
		CACertPath:     viper.GetString("CA_CERT_PATH"),
		StorageTimeout: time.Duration(viper.GetInt("STORAGE_TIMEOUT_SECONDS")) * time.Second,
		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		InitRetries:    viper.GetInt("INIT_RETRIES"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func pathOr(value, dir, name string) string {
	if value != "" {
		return value
	}
	return filepath.Join(dir, name)
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.StorageTimeout <= 0 {
		return fmt.Errorf("storage_timeout_seconds должен быть больше нуля")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds должен быть больше нуля")
	}
	if c.InitRetries < 1 {
		return fmt.Errorf("init_retries должен быть не меньше 1")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
