// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSQLiteDSN keeps the sqlite driver in memory unless a DSN is configured.
const DefaultSQLiteDSN = "file:products?mode=memory&cache=shared"

// Config holds every setting the server reads at startup.
type Config struct {
	Port          string `validate:"required,numeric"`
	APIKey        string
	APIKeyHash    string
	StoreDriver   string `validate:"oneof=memory sqlite postgres"`
	DatabaseDSN   string
	IDStrategy    string `validate:"oneof=sequential uuid"`
	SeedProducts  bool
	RabbitMQURL   string `validate:"omitempty,url"`
	RabbitMQQueue string `validate:"required"`
	EventsAudit   bool
	LogLevel      string `validate:"oneof=debug info warn error"`
	LogFormat     string `validate:"oneof=text json"`
	BodyLimit     int    `validate:"gt=0"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("API_KEY", "")
	v.SetDefault("API_KEY_HASH", "")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DATABASE_DSN", DefaultSQLiteDSN)
	v.SetDefault("ID_STRATEGY", "sequential")
	v.SetDefault("SEED_PRODUCTS", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("EVENTS_AUDIT", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("BODY_LIMIT", 1<<20)
}

// Load reads the given env files (".env" when none are named; a missing file is
// not an error), then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:          strings.TrimPrefix(v.GetString("PORT"), ":"),
		APIKey:        v.GetString("API_KEY"),
		APIKeyHash:    v.GetString("API_KEY_HASH"),
		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		IDStrategy:    strings.ToLower(v.GetString("ID_STRATEGY")),
		SeedProducts:  v.GetBool("SEED_PRODUCTS"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		RabbitMQQueue: v.GetString("RABBITMQ_QUEUE"),
		EventsAudit:   v.GetBool("EVENTS_AUDIT"),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:     strings.ToLower(v.GetString("LOG_FORMAT")),
		BodyLimit:     v.GetInt("BODY_LIMIT"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enum values and cross-field requirements.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule (got %q)", e.Field(), e.Tag(), fmt.Sprint(e.Value())))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.StoreDriver == "postgres" && (c.DatabaseDSN == "" || c.DatabaseDSN == DefaultSQLiteDSN) {
		return errors.New("invalid configuration: DATABASE_DSN must be set for the postgres driver")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Logger builds the operator logger described by LogLevel and LogFormat.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
