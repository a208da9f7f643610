package config

import (
	"fleetdesk/pkg/logger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabasePath         string `mapstructure:"DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret        string `mapstructure:"SESSION_SECRET"`
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel          string `mapstructure:"GEMINI_MODEL"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`
	SeedDemoData         bool   `mapstructure:"SEED_DEMO_DATA"`
}

// DefaultDatabasePath is the DSN of the embedded in-memory store. A named
// shared-cache database keeps every pooled connection on the same data.
const DefaultDatabasePath = "file:fleetdesk?mode=memory&cache=shared"

// DefaultGeminiModel is used when GEMINI_MODEL is not configured.
const DefaultGeminiModel = "gemini-2.5-flash"

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_PATH", "DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS", "SESSION_SECRET",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"SCHEDULER_ENABLED", "SEED_DEMO_DATA",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	// Environment wins; files are the local-development fallback
	if viper.IsSet("SERVER_PORT") && viper.IsSet("SESSION_SECRET") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(&config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config",
		"port", config.ServerPort,
		"environment", config.Environment,
		"schedulerEnabled", config.SchedulerEnabled,
	)
	return config, nil
}

func validateConfig(config *Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.SessionSecret == "" {
		return log.ErrMsg("Fatal error: SESSION_SECRET is required")
	}

	if config.DatabasePath == "" {
		config.DatabasePath = DefaultDatabasePath
	}

	if config.GeminiModel == "" {
		config.GeminiModel = DefaultGeminiModel
	}

	if config.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, assistant will respond in degraded mode")
	}

	return nil
}
