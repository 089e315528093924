// Package config loads certprep settings from defaults, an optional
// YAML file, a .env file and CERTPREP_* environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/abhisek/certprep/internal/llm"
)

// EnvPrefix is prepended to every environment override, e.g.
// CERTPREP_SERVER_ADDR or CERTPREP_LLM_ANTHROPIC_API_KEY.
const EnvPrefix = "CERTPREP"

// Config is the complete application configuration.
type Config struct {
	// DB is the SQLite path. Empty uses store.DefaultDBPath.
	DB string `mapstructure:"db"`

	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Questions QuestionsConfig `mapstructure:"questions"`
	LLM       llm.Config      `mapstructure:"llm"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or pretty
	File   string `mapstructure:"file"`   // TUI log file; empty disables
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	GinMode        string        `mapstructure:"gin_mode"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

type RedisConfig struct {
	// URL enables the session cache, e.g. redis://localhost:6379/0.
	URL string `mapstructure:"url"`
}

type QuestionsConfig struct {
	// Source is "auto" (LLM when a key is configured, else built-in),
	// "llm" or "static".
	Source string `mapstructure:"source"`

	// Seed seeds the built-in bank shuffle. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			GinMode:       "release",
			SessionTTL:    24 * time.Hour,
			ShutdownGrace: 10 * time.Second,
		},
		Questions: QuestionsConfig{Source: "auto"},
		LLM:       llm.DefaultConfig(),
	}
}

// DefaultFile returns $XDG_CONFIG_HOME/certprep/config.yaml, falling back
// to ~/.config.
func DefaultFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "certprep", "config.yaml")
}

// Load builds a Config. An explicit file must exist; when file is empty
// the default location is read if present.
func Load(file string) (Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()
	v := viper.New()

	m := make(map[string]any)
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return cfg, fmt.Errorf("mapstructure: %w", err)
	}
	if err := v.MergeConfigMap(m); err != nil {
		return cfg, fmt.Errorf("merge config map: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := file != ""
	if !explicit {
		file = DefaultFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := stderrors.As(err, &notFound) || stderrors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return cfg, fmt.Errorf("read config from file %s: %w", file, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	// A bare ANTHROPIC_API_KEY (or similar) is enough to enable the LLM.
	if cfg.LLM.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = discovered
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("log.format must be json or pretty, got %q", c.Log.Format)
	}
	switch c.Questions.Source {
	case "auto", "llm", "static":
	default:
		return fmt.Errorf("questions.source must be auto, llm or static, got %q", c.Questions.Source)
	}
	if c.Questions.Source == "llm" {
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("questions.source is llm: %w", err)
		}
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("server.session_ttl must not be negative")
	}
	return nil
}

// UseLLM reports whether questions should come from the LLM.
func (c Config) UseLLM() bool {
	switch c.Questions.Source {
	case "llm":
		return true
	case "static":
		return false
	}
	return c.LLM.Provider != "mock" && c.LLM.Validate() == nil
}
