package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	AppEnv string
	Port   int

	Postgres struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	// "memory" or "redis"
	CacheBackend string

	JWT struct {
		Secret   string
		TTLHours int
	}

	SMTP struct {
		Host string
		Port int
		User string
		Pass string
		From string
	}

	Cloudinary struct {
		BaseURL      string
		CloudName    string
		UploadPreset string
	}
}

// Load reads configuration from environment variables (with defaults).
// A config.yaml in the working directory is honored when present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; defaults and env vars apply
	}

	cfg := &Config{}

	cfg.AppEnv = v.GetString("APP_ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Postgres.Host = v.GetString("PG_HOST")
	cfg.Postgres.Port = v.GetString("PG_PORT")
	cfg.Postgres.User = v.GetString("PG_USER")
	cfg.Postgres.Password = v.GetString("PG_PASSWORD")
	cfg.Postgres.DBName = v.GetString("PG_DB")

	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetString("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")

	cfg.CacheBackend = v.GetString("CACHE_BACKEND")

	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.TTLHours = v.GetInt("JWT_TTL_HOURS")

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.User = v.GetString("SMTP_USER")
	cfg.SMTP.Pass = v.GetString("SMTP_PASS")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.Cloudinary.BaseURL = v.GetString("CLOUDINARY_BASE_URL")
	cfg.Cloudinary.CloudName = v.GetString("CLOUDINARY_CLOUD_NAME")
	cfg.Cloudinary.UploadPreset = v.GetString("CLOUDINARY_UPLOAD_PRESET")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 8080)

	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", "5432")
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_DB", "startup_hub")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")

	v.SetDefault("CACHE_BACKEND", "memory")

	v.SetDefault("JWT_TTL_HOURS", 24)

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 1025)
	v.SetDefault("SMTP_FROM", "noreply@startup-hub.local")

	v.SetDefault("CLOUDINARY_BASE_URL", "https://api.cloudinary.com/v1_1")
}

func validate(cfg *Config) error {
	if cfg.AppEnv == "production" && cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// PostgresDSN builds the connection string used by both sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.DBName)
}
