package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port       string `mapstructure:"port"`
		APIVersion string `mapstructure:"api_version"`
		GinMode    string `mapstructure:"gin_mode"`
		BaseURL    string `mapstructure:"base_url"`
	} `mapstructure:"server"`

	Database struct {
		Driver string `mapstructure:"driver"` // sqlite|mysql|postgres
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Session struct {
		Store  string `mapstructure:"store"` // cookie|redis
		Secret string `mapstructure:"secret"`
	} `mapstructure:"session"`

	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Auth struct {
		JWTSecret      string        `mapstructure:"jwt_secret"`
		TokenTTL       time.Duration `mapstructure:"token_ttl"`
		EmailTokenTTL  time.Duration `mapstructure:"email_token_ttl"`
		PasswordScheme string        `mapstructure:"password_scheme"` // bcrypt|legacy
		CipherSecret   string        `mapstructure:"cipher_secret"`
	} `mapstructure:"auth"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	RateLimit struct {
		PerMinute int `mapstructure:"per_minute"`
	} `mapstructure:"rate_limit"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`

	OpenAI struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"openai"`
}

// Load reads configuration from .env, an optional config file and the environment.
// Environment keys use "_" in place of ".", e.g. AUTH_JWT_SECRET.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.api_version", "v1")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "agendapp.db")

	v.SetDefault("session.store", "cookie")
	v.SetDefault("session.secret", "")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 48*time.Hour)
	v.SetDefault("auth.email_token_ttl", 24*time.Hour)
	v.SetDefault("auth.password_scheme", "bcrypt")
	v.SetDefault("auth.cipher_secret", "")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.per_minute", 120)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("openai.api_key", "")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// session cookies are signed with the JWT secret unless told otherwise
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = cfg.Auth.JWTSecret
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

// RedisAddr joins the redis host and port.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

func validate(c *Config) error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret must be set")
	}
	switch c.Auth.PasswordScheme {
	case "bcrypt":
	case "legacy":
		if strings.TrimSpace(c.Auth.CipherSecret) == "" {
			return errors.New("auth.cipher_secret must be set when auth.password_scheme is legacy")
		}
	default:
		return fmt.Errorf("unsupported auth.password_scheme %q", c.Auth.PasswordScheme)
	}
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn must not be empty")
	}
	switch c.Session.Store {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported session.store %q", c.Session.Store)
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("server.port must not be empty")
	}
	return nil
}
