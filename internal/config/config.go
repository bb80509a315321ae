package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Catalog CatalogConfig
	Editor  EditorConfig
	Logging LoggingConfig
}

// CatalogConfig selects where equipment and chassis data come from. The
// first non-empty source wins: Postgres, then SQLite, then YAML.
type CatalogConfig struct {
	YAMLPath    string
	SQLitePath  string
	DatabaseURL string
}

type EditorConfig struct {
	UndoDepth int
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	depth, err := strconv.Atoi(GetEnv("LSML_UNDO_DEPTH", "128"))
	if err != nil {
		return nil, fmt.Errorf("LSML_UNDO_DEPTH: %w", err)
	}
	c := &Config{
		Catalog: CatalogConfig{
			YAMLPath:    GetEnv("LSML_CATALOG", "catalog.yaml"),
			SQLitePath:  GetEnv("LSML_DB_PATH", ""),
			DatabaseURL: GetEnv("DATABASE_URL", ""),
		},
		Editor: EditorConfig{UndoDepth: depth},
		Logging: LoggingConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "text"),
		},
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Editor.UndoDepth < 1 {
		return fmt.Errorf("LSML_UNDO_DEPTH must be at least 1, got %d", c.Editor.UndoDepth)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}
	if c.Catalog.YAMLPath == "" && c.Catalog.SQLitePath == "" && c.Catalog.DatabaseURL == "" {
		return fmt.Errorf("no catalog source configured")
	}
	return nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
