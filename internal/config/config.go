package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
	// Browser origin allowed to open WebSocket connections.
	FrontendOrigin string `yaml:"frontend_origin"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	TTL    int    `yaml:"ttl"` // minutes
}

type OAuthConfig struct {
	GoogleClientID string `yaml:"google_client_id"`
	GoogleIssuer   string `yaml:"google_issuer"`
}

type EmailConfig struct {
	// Providers tried in order: smtp, ses, sesv2
	Providers    []string `yaml:"providers"`
	SMTPHost     string   `yaml:"smtp_host"`
	SMTPPort     int      `yaml:"smtp_port"`
	SMTPUsername string   `yaml:"smtp_user"`
	SMTPPassword string   `yaml:"smtp_password"`
	SESRegion    string   `yaml:"ses_region"`
	FromEmail    string   `yaml:"from_email"`
	FromName     string   `yaml:"from_name"`
	AdminEmail   string   `yaml:"admin_email"` // contact form notifications
}

type StorageConfig struct {
	Type      string `yaml:"type"`       // local, s3
	BasePath  string `yaml:"base_path"`  // for local storage
	BaseURL   string `yaml:"base_url"`   // public URL base
	Bucket    string `yaml:"bucket"`     // for S3
	Region    string `yaml:"region"`     // for S3
	AccessKey string `yaml:"access_key"` // for S3
	SecretKey string `yaml:"secret_key"` // for S3
	Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
}

type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`      // bytes
	AllowedTypes []string `yaml:"allowed_types"` // MIME types
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Email    EmailConfig    `yaml:"email"`
	Storage  StorageConfig  `yaml:"storage"`
	Upload   UploadConfig   `yaml:"upload"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config/config.yaml, or falls back to environment
// variables when DATABASE_URL is set (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment mode
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.FrontendOrigin = os.Getenv("FRONTEND_ORIGIN")
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.Providers = []string{"smtp"}
	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@buildxpert.test"
	cfg.Email.FromName = "BuildXpert"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Upload.MaxSize <= 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
	if len(cfg.Email.Providers) == 0 {
		cfg.Email.Providers = []string{"smtp", "ses", "sesv2"}
	}
	if cfg.OAuth.GoogleIssuer == "" {
		cfg.OAuth.GoogleIssuer = "https://accounts.google.com"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
