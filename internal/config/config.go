package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
	} `mapstructure:"jwt"`

	Log struct {
		Level      string `mapstructure:"level"`
		Console    bool   `mapstructure:"console"`
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`

	Webhooks struct {
		// DealWonURL receives a POST when a deal moves into Won. Empty
		// disables the notification.
		DealWonURL string `mapstructure:"deal_won_url"`
	} `mapstructure:"webhooks"`

	ProfitShare struct {
		// Strict rejects share sets that allocate more than 100% or more
		// than the deal's computed profit. Off by default.
		Strict bool `mapstructure:"strict"`
	} `mapstructure:"profitshare"`

	Tasks struct {
		// Workflow selects the task status vocabulary ("photo" or
		// "generic"). CustomStatuses overrides it entirely when set; the
		// list must end in "Done".
		Workflow       string   `mapstructure:"workflow"`
		CustomStatuses []string `mapstructure:"custom_statuses"`
	} `mapstructure:"tasks"`

	Seed bool `mapstructure:"seed"`
}

// Load reads configs/config.yaml if present, .env if present, and the
// environment. The binary works with no config file at all.
func Load() *Config {
	godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "agency")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("tasks.workflow", "photo")
	v.SetDefault("profitshare.strict", false)
	v.SetDefault("seed", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config file skipped: %v", err)
		}
	}

	// Env aliases so JWT_SECRET / DATABASE_URL-style vars work without a file.
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("webhooks.deal_won_url", "DEAL_WON_WEBHOOK_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal: %v", err)
	}
	return &cfg
}
