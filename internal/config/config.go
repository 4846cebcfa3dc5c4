package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/utils"
)

// EnvPrefix is prepended to every environment variable name below.
const EnvPrefix = "LINGOCARDS_"

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPebble   = "pebble"
	BackendRedis    = "redis"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DefaultLanguage string        `yaml:"default_language" env:"LANGUAGE"`
	Storage         StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Anki            AnkiConfig    `yaml:"anki" envPrefix:"ANKI_"`
	Log             LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	// Dir is used by the file and pebble backends.
	Dir    string `yaml:"dir" env:"DIR"`
	Prefix string `yaml:"prefix" env:"PREFIX"`

	Redis struct {
		Addr     string `yaml:"addr" env:"ADDR"`
		Password string `yaml:"password" env:"PASSWORD"`
		DB       int    `yaml:"db" env:"DB"`
	} `yaml:"redis" envPrefix:"REDIS_"`

	Valkey struct {
		URL string `yaml:"url" env:"URL"`
	} `yaml:"valkey" envPrefix:"VALKEY_"`

	Postgres struct {
		DSN     string `yaml:"dsn" env:"DSN"`
		Migrate bool   `yaml:"migrate" env:"MIGRATE"`
	} `yaml:"postgres" envPrefix:"POSTGRES_"`
}

type AnkiConfig struct {
	URL      string `yaml:"url" env:"URL"`
	RootDeck string `yaml:"root_deck" env:"ROOT_DECK"`
}

type LogConfig struct {
	Verbose bool `yaml:"verbose" env:"VERBOSE"`
	Debug   bool `yaml:"debug" env:"DEBUG"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path, fills defaults and applies LINGOCARDS_
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyDefaults()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv exports the variables in a .env file so Load sees them.
// Variables already set win. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = language.Default.String()
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = utils.GetDefaultDataDir()
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "flashcards"
	}
	if c.Anki.URL == "" {
		c.Anki.URL = "http://localhost:8765"
	}
	if c.Anki.RootDeck == "" {
		c.Anki.RootDeck = "Lingocards"
	}
}

// Language returns the parsed default language.
func (c *Config) Language() (language.Code, error) {
	return language.Parse(c.DefaultLanguage)
}

func (c *Config) Validate() error {
	if _, err := c.Language(); err != nil {
		return fmt.Errorf("%w: default_language: %v", ErrInvalid, err)
	}

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile, BackendPebble:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%w: storage.dir is required for the %s backend", ErrInvalid, c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: storage.redis.addr is required", ErrInvalid)
		}
	case BackendValkey:
		if c.Storage.Valkey.URL == "" {
			return fmt.Errorf("%w: storage.valkey.url is required", ErrInvalid)
		}
	case BackendPostgres:
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("%w: storage.postgres.dsn is required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q (want one of %s)", ErrInvalid, c.Storage.Backend, strings.Join(Backends(), ", "))
	}

	return nil
}

func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendPebble, BackendRedis, BackendValkey, BackendPostgres}
}
