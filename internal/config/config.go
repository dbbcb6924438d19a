package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Session SessionConfig `mapstructure:"session"`
	Storage StorageConfig `mapstructure:"storage"`
	OIDC    OIDCConfig    `mapstructure:"oidc"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	I18n    I18nConfig    `mapstructure:"i18n"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port    string    `mapstructure:"port"`
	BaseURL string    `mapstructure:"base_url"`
	TLS     TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // "mysql" or "sqlite3"
	DSN    string `mapstructure:"dsn"`
}

// SessionConfig holds session and CSRF configuration.
type SessionConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	LifetimeHours int    `mapstructure:"lifetime_hours"`
}

// StorageConfig holds object storage configuration for uploaded images.
// URL and APIKey are the two connection parameters of the storage service.
type StorageConfig struct {
	Driver    string `mapstructure:"driver"` // "s3" or "local"
	URL       string `mapstructure:"url"`
	APIKey    string `mapstructure:"api_key"`
	Secret    string `mapstructure:"secret"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	PublicURL string `mapstructure:"public_url"`
	LocalDir  string `mapstructure:"local_dir"`
}

// Configured reports whether both connection parameters are present.
func (c StorageConfig) Configured() bool {
	return c.URL != "" && c.APIKey != ""
}

// OIDCConfig holds OIDC client configuration.
type OIDCConfig struct {
	IssuerURL    string `mapstructure:"issuer_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether single sign-on is configured.
func (c OIDCConfig) Enabled() bool {
	return c.IssuerURL != ""
}

// CacheConfig holds configuration for the SQLite page cache.
type CacheConfig struct {
	FilePath   string `mapstructure:"file_path"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// I18nConfig holds localisation settings.
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

var defaults = map[string]interface{}{
	"server.port":            "8080",
	"server.base_url":        "http://localhost:8080",
	"server.tls.enabled":     false,
	"server.tls.cert_file":   "",
	"server.tls.key_file":    "",
	"db.driver":              "sqlite3",
	"db.dsn":                 "file:college.db?_foreign_keys=on",
	"session.secret_key":     "",
	"session.lifetime_hours": 24,
	"storage.driver":         "local",
	"storage.url":            "",
	"storage.api_key":        "",
	"storage.secret":         "",
	"storage.region":         "us-east-1",
	"storage.bucket":         "college-site",
	"storage.public_url":     "",
	"storage.local_dir":      "./uploads",
	"oidc.issuer_url":        "",
	"oidc.client_id":         "",
	"oidc.client_secret":     "",
	"oidc.redirect_url":      "",
	"cache.file_path":        "cache.db",
	"cache.ttl_seconds":      60,
	"log.level":              "info",
	"log.format":             "console",
	"i18n.default_language":  "ar",
}

// LoadConfig reads configuration from file and environment variables.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()

	// Every key needs a default so AutomaticEnv can override it on Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/college-site/")
	v.AddConfigPath("$HOME/.college-site")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	v.SetEnvPrefix("COLLEGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
