package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// Timezone decides which calendar date a record belongs to. Empty means the local zone.
	Timezone string         `mapstructure:"timezone" validate:"omitempty,timezone"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Export   ExportConfig   `mapstructure:"export"`
}

// Location resolves Timezone. It falls back to the local zone when Timezone is empty or cannot be loaded.
func (cfg Config) Location() *time.Location {
	if cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
	// PageSize is the number of records returned per page by list endpoints.
	PageSize int `mapstructure:"page_size" validate:"min=1"`
	// MaxUploadBytes bounds multipart upload bodies.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"min=1"`
	// ChatTimeout bounds one streamed chat answer.
	ChatTimeout time.Duration `mapstructure:"chat_timeout" validate:"duration_positive"`
	SearchLimit int           `mapstructure:"search_limit" validate:"min=1"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host" validate:"required"`
	Port            int               `mapstructure:"port" validate:"min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required"`
	Username        string            `mapstructure:"username" validate:"required"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	Model   string `mapstructure:"model" validate:"required"`
	// ProxyURL routes every AI request through an HTTP proxy when set.
	ProxyURL string        `mapstructure:"proxy_url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"duration_positive"`

	AnalysisMaxTokens int `mapstructure:"analysis_max_tokens" validate:"min=1"`
	SummaryMaxTokens  int `mapstructure:"summary_max_tokens" validate:"min=1"`
	ChatMaxTokens     int `mapstructure:"chat_max_tokens" validate:"min=1"`
	KeywordMaxTokens  int `mapstructure:"keyword_max_tokens" validate:"min=1"`
}

type KeywordsConfig struct {
	// Delay is the fixed pause between two keyword requests of the backfill job.
	Delay time.Duration `mapstructure:"delay" validate:"duration_positive"`
	// RetryAttempts is how many extra attempts the backfill makes on transport failures.
	RetryAttempts uint `mapstructure:"retry_attempts"`
}

type ExportConfig struct {
	Directory string `mapstructure:"directory" validate:"required"`
	// Template overrides the embedded daily report template.
	Template string `mapstructure:"template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studylog")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("timezone", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.page_size", 3)
	v.SetDefault("server.max_upload_bytes", 20<<20)
	v.SetDefault("server.chat_timeout", 5*time.Minute)
	v.SetDefault("server.search_limit", 20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "studylog")
	v.SetDefault("database.username", "user")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 2*time.Minute)
	v.SetDefault("openai.analysis_max_tokens", 16384)
	v.SetDefault("openai.summary_max_tokens", 2048)
	v.SetDefault("openai.chat_max_tokens", 4096)
	v.SetDefault("openai.keyword_max_tokens", 200)
	v.SetDefault("keywords.delay", time.Second)
	v.SetDefault("keywords.retry_attempts", 0)
	v.SetDefault("export.directory", filepath.Join("outputs", "reports"))
	v.SetDefault("export.template", "")

	// Bind OpenAI config to environment variables only (not from config file)
	for key, env := range map[string]string{
		"openai.api_key":   "OPENAI_API_KEY",
		"openai.base_url":  "OPENAI_BASE_URL",
		"openai.model":     "OPENAI_MODEL",
		"openai.proxy_url": "OPENAI_PROXY_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
