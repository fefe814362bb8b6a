// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig      `mapstructure:"app"`
	Server    ServerConfig   `mapstructure:"server"`
	Database  DatabaseConfig `mapstructure:"database"`
	Forms     FormsConfig    `mapstructure:"forms"`
	Catalogue CatConfig      `mapstructure:"catalogue"`
	AWS       AWSConfig      `mapstructure:"aws"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	AllowedOrigin  string `mapstructure:"allowed_origin"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FormsConfig holds settings for the submission pipeline.
type FormsConfig struct {
	RecipientEmail string `mapstructure:"recipient_email"`
	FromEmail      string `mapstructure:"from_email"`
	DraftTTL       int    `mapstructure:"draft_ttl"` // seconds, 0 means no expiry
}

type CatConfig struct {
	Path string `mapstructure:"path"` // optional YAML programme file
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	SES    struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"ses"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
