package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LIFEDASH"

type Config struct {
	DBPath      string
	Log         LogConfig
	Epoch       time.Time
	BirthDate   time.Time
	Locale      string
	MoneyLocale string // grouping for currency; en-IN groups in lakhs
	Currency    string
	Location    *time.Location
}

type LogConfig struct {
	Level  string
	Format string
	// File is the log destination; "-" means stderr.
	File string
}

// Defaults for every key. Timestamps are RFC 3339; dates are YYYY-MM-DD.
var defaults = map[string]any{
	"db_path":      "",
	"log_level":    "info",
	"log_format":   "text",
	"log_file":     "",
	"epoch":        "2006-12-02T07:51:36Z",
	"birth_date":   "2004-01-01",
	"locale":       "en",
	"money_locale": "en-IN",
	"currency":     "₹",
	"timezone":     "",
}

// Load reads configuration with precedence defaults < config file < environment.
// A .env file (or the one named by ENV_FILE) is loaded into the environment first.
// configFile overrides the config search path when non-empty.
func Load(configFile string) (Config, error) {
	if err := loadEnv(); err != nil {
		return Config{}, err
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lifedash")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.lifedash")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBPath: strings.TrimSpace(v.GetString("db_path")),
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
			File:   strings.TrimSpace(v.GetString("log_file")),
		},
		Locale:      strings.TrimSpace(v.GetString("locale")),
		MoneyLocale: strings.TrimSpace(v.GetString("money_locale")),
		Currency:    v.GetString("currency"),
	}

	loc := time.Local
	if tz := strings.TrimSpace(v.GetString("timezone")); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("timezone %q: %w", tz, err)
		}
		loc = l
	}
	cfg.Location = loc

	epoch, err := time.Parse(time.RFC3339, strings.TrimSpace(v.GetString("epoch")))
	if err != nil {
		return cfg, fmt.Errorf("epoch must be an RFC 3339 timestamp: %w", err)
	}
	cfg.Epoch = epoch

	birth, err := time.Parse("2006-01-02", strings.TrimSpace(v.GetString("birth_date")))
	if err != nil {
		return cfg, fmt.Errorf("birth_date must be YYYY-MM-DD: %w", err)
	}
	cfg.BirthDate = birth

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug|info|warn|error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.Log.Format)
	}
	if c.Locale == "" {
		return fmt.Errorf("locale is required")
	}
	if c.MoneyLocale == "" {
		return fmt.Errorf("money_locale is required")
	}
	return nil
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
