package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port       int    `yaml:"port" env:"PORT" env-default:"3000"`
	StaticDir  string `yaml:"static_dir" env:"STATIC_DIR"`
	Log        LogConfig
	Database   DatabaseConfig
	Completion CompletionConfig
	SMTP       SMTPConfig
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	JSON  bool   `yaml:"json" env:"LOG_JSON" env-default:"false"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"file:data.sqlite?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"`
}

type CompletionConfig struct {
	APIKey string `yaml:"api_key" env:"GROQ_API_KEY"`
	URL    string `yaml:"url" env:"GROQ_API_URL" env-default:"https://api.groq.com/openai/v1/completions"`
	Model  string `yaml:"model" env:"GROQ_MODEL" env-default:"groq-lite"`
	// Timeout bounds one completion call, response body included.
	Timeout time.Duration `yaml:"timeout" env:"GROQ_TIMEOUT" env-default:"60s"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Secure   bool   `yaml:"secure" env:"SMTP_SECURE" env-default:"false"`
	Username string `yaml:"username" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASS"`
	From     string `yaml:"from" env:"MAIL_FROM"`
}

// Sender is MAIL_FROM, or the SMTP user when no explicit sender is configured.
func (c SMTPConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// HasAuth reports whether both credentials are present.
func (c SMTPConfig) HasAuth() bool {
	return c.Username != "" && c.Password != ""
}

// Load reads the file named by CONFIG_PATH when set, then the environment.
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
