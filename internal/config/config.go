package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config is built once at startup and passed to the components that need
// it. It is never mutated afterwards.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret            string `yaml:"secret"`
		AccessTTLMinutes  int    `yaml:"access_ttl_minutes"`
		RefreshTTLMinutes int    `yaml:"refresh_ttl_minutes"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"`       // local or s3
		BasePath  string `yaml:"base_path"`  // local storage root
		BaseURL   string `yaml:"base_url"`   // public URL prefix
		Bucket    string `yaml:"bucket"`     // object storage bucket
		Region    string `yaml:"region"`     // e.g. kr-standard
		AccessKey string `yaml:"access_key"` //
		SecretKey string `yaml:"secret_key"` //
		Endpoint  string `yaml:"endpoint"`   // NCP object storage endpoint
	} `yaml:"storage"`

	Kakao struct {
		UserInfoURL string `yaml:"user_info_url"`
	} `yaml:"kakao"`
}

const defaultKakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

// Load reads the yaml config file at CONFIG_PATH (default
// config/config.yaml) and then applies environment-variable overrides.
// DATABASE_URL, REDIS_ADDR and JWT_SECRET always win over the file so
// deployments and tests can be configured without touching yaml.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	} else if os.Getenv("DATABASE_URL") == "" {
		return nil, fmt.Errorf("open config file %s: %w", configPath, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is not configured")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("NCP_ACCESS_KEY_ID"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("NCP_SECRET_ACCESS_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("NCP_BUCKET_NAME"); v != "" {
		cfg.Storage.Bucket = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 60
	}
	if cfg.JWT.RefreshTTLMinutes == 0 {
		cfg.JWT.RefreshTTLMinutes = 7 * 24 * 60
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "kr-standard"
	}
	if cfg.Kakao.UserInfoURL == "" {
		cfg.Kakao.UserInfoURL = defaultKakaoUserInfoURL
	}
}
