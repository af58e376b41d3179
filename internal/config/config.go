package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"karuta-server/internal/util"
)

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// Config provides configuration for the karuta server
type Config struct {
	loaded bool
	// CatalogPath is the JSON document with all 100 card records
	CatalogPath string `yaml:"catalogPath" envconfig:"catalog_path" validate:"required"`
	Store       struct {
		Driver         string `yaml:"driver" validate:"oneof=file postgres"`
		Path           string `yaml:"path" validate:"required_if=Driver file"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn" validate:"required_if=Driver postgres"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		DefaultCardCount int `yaml:"defaultCardCount" envconfig:"default_card_count" validate:"min=2,max=50,even"`
		DefaultMinutes   int `yaml:"defaultMinutes" envconfig:"default_minutes" validate:"min=1,max=60"`
	}
}

var config Config

// DefaultConfig returns the configuration used when no file or environment
// overrides are present
func DefaultConfig() Config {
	var c Config
	c.CatalogPath = "karuta_data.json"
	c.Store.Driver = StoreDriverFile
	c.Store.Path = "teiichi.json"
	c.Store.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.Store.MigrationsPath = "./sql"
	c.Log.Level = "info"
	c.Game.DefaultCardCount = 50
	c.Game.DefaultMinutes = 15

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file is not an error, the defaults are used instead
func Load() error {
	c := DefaultConfig()

	configFile := util.Getenv("KARUTA_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return fmt.Errorf("could not decode %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("karuta", &c); err != nil {
		return err
	}

	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	config = c
	return nil
}

// newValidator adds the "even" tag, card counts are split between two sides
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})

	return v
}
