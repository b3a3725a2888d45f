package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	App struct {
		Env  string `yaml:"env"`
		Port int    `yaml:"port"`
	} `yaml:"app"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret    string `yaml:"secret"`
		ExpiresIn int    `yaml:"expires_in"` // minutes
		RefreshIn int    `yaml:"refresh_in"` // minutes
	} `yaml:"jwt"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`

	Storage struct {
		Enabled         bool   `yaml:"enabled"`
		Endpoint        string `yaml:"endpoint"`
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"access_key_id"`
		SecretAccessKey string `yaml:"secret_access_key"`
		Bucket          string `yaml:"bucket"`
		CDNURL          string `yaml:"cdn_url"`
		BasePath        string `yaml:"base_path"`
		ForcePathStyle  bool   `yaml:"force_path_style"`
	} `yaml:"storage"`

	Elasticsearch struct {
		Enabled   bool     `yaml:"enabled"`
		Addresses []string `yaml:"addresses"`
		Username  string   `yaml:"username"`
		Password  string   `yaml:"password"`
	} `yaml:"elasticsearch"`

	Stripe struct {
		SecretKey  string `yaml:"secret_key"`
		SuccessURL string `yaml:"success_url"`
		CancelURL  string `yaml:"cancel_url"`
	} `yaml:"stripe"`

	Push struct {
		Enabled   bool   `yaml:"enabled"`
		Endpoint  string `yaml:"endpoint"`
		ServerKey string `yaml:"server_key"`
	} `yaml:"push"`

	Queue struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"queue"`
}

// Load reads a YAML config file and applies environment overrides.
// Secrets always come from the environment when set.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (jwt.secret or JWT_SECRET)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.App.Env, "APP_ENV")
	overrideInt(&cfg.App.Port, "APP_PORT")

	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideInt(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.Name, "DB_NAME")

	overrideString(&cfg.Redis.Host, "REDIS_HOST")
	overrideInt(&cfg.Redis.Port, "REDIS_PORT")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")

	overrideString(&cfg.JWT.Secret, "JWT_SECRET")

	overrideString(&cfg.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	overrideString(&cfg.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")

	overrideString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	overrideString(&cfg.Push.ServerKey, "PUSH_SERVER_KEY")
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "local"
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8080
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 3306
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.JWT.ExpiresIn == 0 {
		cfg.JWT.ExpiresIn = 15
	}
	if cfg.JWT.RefreshIn == 0 {
		cfg.JWT.RefreshIn = 60 * 24
	}
	if cfg.Queue.Concurrency == 0 {
		cfg.Queue.Concurrency = 10
	}
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev" || c.App.Env == "development"
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}
