package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	// JWTSecret подписывает сессионные токены; минимум 32 байта,
	// проверяется при старте процесса, не на каждый вызов.
	JWTSecret string `yaml:"jwt_secret"`

	CodeLength             int  `yaml:"code_length"`
	CodeTTLMinutes         int  `yaml:"code_ttl_minutes"`
	AttemptCooldownSeconds int  `yaml:"attempt_cooldown_seconds"`
	SessionTTLDays         int  `yaml:"session_ttl_days"`
	CookieSecure           bool `yaml:"cookie_secure"`
}

func (a AuthConfig) CodeTTL() time.Duration {
	return time.Duration(a.CodeTTLMinutes) * time.Minute
}

func (a AuthConfig) AttemptCooldown() time.Duration {
	return time.Duration(a.AttemptCooldownSeconds) * time.Second
}

func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLDays) * 24 * time.Hour
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth AuthConfig `yaml:"auth"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Auth.CodeLength == 0 {
		cfg.Auth.CodeLength = 6
	}
	if cfg.Auth.CodeTTLMinutes == 0 {
		cfg.Auth.CodeTTLMinutes = 10
	}
	if cfg.Auth.AttemptCooldownSeconds == 0 {
		cfg.Auth.AttemptCooldownSeconds = 5
	}
	if cfg.Auth.SessionTTLDays == 0 {
		cfg.Auth.SessionTTLDays = 30
	}
	return &cfg
}
