package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = "../../.env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress      = ":8080"
	defaultMigrationsPath  = "migrations/server"
	defaultSessionTTLHours = 24
	defaultShutdownTimeout = 10
	defaultPurgeMinutes    = 60
)

type Config struct {
	Env     string
	DB      db
	Server  server
	Logger  logger
	Session session
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type session struct {
	TTL           time.Duration `env:"SESSION_TTL_HOURS"`
	PurgeInterval time.Duration `env:"SESSION_PURGE_MINUTES"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("migrations_path", defaultMigrationsPath)
	viper.SetDefault("session_ttl_hours", defaultSessionTTLHours)
	viper.SetDefault("shutdown_timeout_seconds", defaultShutdownTimeout)
	viper.SetDefault("session_purge_minutes", defaultPurgeMinutes)
	viper.SetDefault("log_level", "info")

	config := Config{
		Env: viper.GetString("app_env"),
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:      viper.GetString("run_address"),
			ShutdownTimeout: time.Duration(viper.GetInt("shutdown_timeout_seconds")) * time.Second,
		},
		Logger:  logger{LogLevel: viper.GetString("log_level")},
		Session: session{
			TTL:           time.Duration(viper.GetInt("session_ttl_hours")) * time.Hour,
			PurgeInterval: time.Duration(viper.GetInt("session_purge_minutes")) * time.Minute,
		},
	}

	if config.DB.DatabaseURI == "" {
		log.Fatalln("DATABASE_URI is required")
	}

	return &config
}
