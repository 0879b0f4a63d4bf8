// Package config loads command configuration from an optional .env file, an
// optional YAML file and CUSTOMERFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CUSTOMERFORM"

type Config struct {
	AppEnv string       `mapstructure:"app_env" validate:"required"`
	API    APIConfig    `mapstructure:"api"`
	Logger LoggerConfig `mapstructure:"logger"`
	Search SearchConfig `mapstructure:"search"`
	UI     UIConfig     `mapstructure:"ui"`
	Stub   StubConfig   `mapstructure:"stub"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type LoggerConfig struct {
	Level             string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Encoding          string `mapstructure:"encoding" validate:"oneof=json console"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type SearchConfig struct {
	Encoding string `mapstructure:"encoding" validate:"oneof=raw url"`
}

type UIConfig struct {
	Renderer  string `mapstructure:"renderer" validate:"oneof=text html"`
	Overlay   string `mapstructure:"overlay"`
	Templates string `mapstructure:"templates"`
}

// StubConfig configures the local stub server.
type StubConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// IsDevelopment reports whether the app runs in a development environment.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Option adjusts Load.
type Option func(*loader)

type loader struct {
	file    string
	envFile string
}

// WithFile reads a YAML config file. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithEnvFile loads dotenv values from path instead of ./.env. Variables
// already set in the environment win.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = strings.TrimSpace(path)
	}
}

func defaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("api.base_url", "http://localhost:8080/")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.development", false)
	v.SetDefault("logger.disable_caller", false)
	v.SetDefault("logger.disable_stacktrace", true)
	v.SetDefault("search.encoding", "raw")
	v.SetDefault("ui.renderer", "text")
	v.SetDefault("ui.overlay", "")
	v.SetDefault("ui.templates", "")
	v.SetDefault("stub.addr", ":8080")
}

// Load resolves and validates the configuration.
func Load(options ...Option) (Config, error) {
	l := loader{envFile: ".env"}
	for _, opt := range options {
		if opt != nil {
			opt(&l)
		}
	}

	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load env file %s: %w", l.envFile, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.file != "" {
		v.SetConfigFile(l.file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", l.file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Search.Encoding = strings.ToLower(strings.TrimSpace(cfg.Search.Encoding))
	cfg.UI.Renderer = strings.ToLower(strings.TrimSpace(cfg.UI.Renderer))

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks cfg and reports every failing key.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(problems, "; "))
}
