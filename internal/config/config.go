// Package config provides configuration management for the medical
// transcription service
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Settings holds the application configuration
type Settings struct {
	Server   ServerConfig   `json:"server"`
	Remote   RemoteConfig   `json:"remote"`
	Pipeline PipelineConfig `json:"pipeline"`
	Storage  StorageConfig  `json:"storage"`
	Features FeatureConfig  `json:"features"`
	Auth     AuthConfig     `json:"auth"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port            int      `json:"port"`
	Host            string   `json:"host"`
	CertFile        string   `json:"certFile"`
	KeyFile         string   `json:"keyFile"`
	ShutdownTimeout int      `json:"shutdownTimeout"`
	AllowedOrigins  []string `json:"allowedOrigins"`
}

// RemoteConfig locates the transcription and analysis service
type RemoteConfig struct {
	BaseURL        string `json:"baseURL"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// PipelineConfig tunes the upload pipeline
type PipelineConfig struct {
	// Concurrency is how many files may be in flight at once during a
	// batch run. 1 reproduces strictly sequential submission.
	Concurrency int `json:"concurrency"`
	// PersistDemoResults writes demo fallback results to the record list
	// like real ones, matching the product's offline-demo behavior.
	PersistDemoResults bool `json:"persistDemoResults"`
}

// StorageConfig contains audio archive configuration
type StorageConfig struct {
	DefaultProvider string            `json:"defaultProvider"`
	Local           map[string]string `json:"local"`
	S3              map[string]string `json:"s3"`
	Google          map[string]string `json:"google"`
}

// FeatureConfig contains feature flags
type FeatureConfig struct {
	EnableAuth            bool `json:"enableAuth"`
	EnableArchive         bool `json:"enableArchive"`
	EnableProgressUpdates bool `json:"enableProgressUpdates"`
	EnableReports         bool `json:"enableReports"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	GoogleClientID     string `json:"googleClientID"`
	GoogleClientSecret string `json:"googleClientSecret"`
	OAuthRedirectURL   string `json:"oauthRedirectURL"`
}

// AppConfig is the global application configuration
var AppConfig Settings

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configFile string) error {
	// Set defaults
	AppConfig = Settings{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ShutdownTimeout: 30,
			AllowedOrigins:  []string{"*"},
		},
		Remote: RemoteConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 300,
		},
		Pipeline: PipelineConfig{
			Concurrency:        1,
			PersistDemoResults: true,
		},
		Storage: StorageConfig{
			DefaultProvider: "local",
			Local:           map[string]string{"basePath": "./audio-archive"},
		},
		Features: FeatureConfig{
			EnableAuth:            false,
			EnableArchive:         true,
			EnableProgressUpdates: true,
			EnableReports:         true,
		},
		Auth: AuthConfig{
			OAuthRedirectURL: "http://localhost:8080/api/auth/callback",
		},
	}

	// Load from config file if it exists
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return fmt.Errorf("error reading config file: %w", err)
			}

			if err := json.Unmarshal(data, &AppConfig); err != nil {
				return fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv()

	return nil
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv() {
	if port := os.Getenv("MT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			AppConfig.Server.Port = p
		}
	}

	if host := os.Getenv("MT_HOST"); host != "" {
		AppConfig.Server.Host = host
	}

	if certFile := os.Getenv("MT_CERT_FILE"); certFile != "" {
		AppConfig.Server.CertFile = certFile
	}

	if keyFile := os.Getenv("MT_KEY_FILE"); keyFile != "" {
		AppConfig.Server.KeyFile = keyFile
	}

	if origins := os.Getenv("MT_ALLOWED_ORIGINS"); origins != "" {
		AppConfig.Server.AllowedOrigins = strings.Split(origins, ",")
	}

	// Remote service
	if baseURL := os.Getenv("MT_REMOTE_BASE_URL"); baseURL != "" {
		AppConfig.Remote.BaseURL = baseURL
	}

	if timeout := os.Getenv("MT_REMOTE_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			AppConfig.Remote.TimeoutSeconds = t
		}
	}

	// Pipeline
	if concurrency := os.Getenv("MT_PIPELINE_CONCURRENCY"); concurrency != "" {
		if c, err := strconv.Atoi(concurrency); err == nil {
			AppConfig.Pipeline.Concurrency = c
		}
	}

	if persist := os.Getenv("MT_PERSIST_DEMO_RESULTS"); persist != "" {
		AppConfig.Pipeline.PersistDemoResults = persist == "true" || persist == "1"
	}

	// Storage
	if provider := os.Getenv("MT_STORAGE_PROVIDER"); provider != "" {
		AppConfig.Storage.DefaultProvider = provider
	}

	if basePath := os.Getenv("MT_ARCHIVE_DIR"); basePath != "" {
		if AppConfig.Storage.Local == nil {
			AppConfig.Storage.Local = map[string]string{}
		}
		AppConfig.Storage.Local["basePath"] = basePath
	}

	// Feature flags
	if enableAuth := os.Getenv("MT_ENABLE_AUTH"); enableAuth != "" {
		AppConfig.Features.EnableAuth = enableAuth == "true" || enableAuth == "1"
	}

	if enableArchive := os.Getenv("MT_ENABLE_ARCHIVE"); enableArchive != "" {
		AppConfig.Features.EnableArchive = enableArchive == "true" || enableArchive == "1"
	}

	// Auth config
	if clientID := os.Getenv("MT_GOOGLE_CLIENT_ID"); clientID != "" {
		AppConfig.Auth.GoogleClientID = clientID
	}

	if clientSecret := os.Getenv("MT_GOOGLE_CLIENT_SECRET"); clientSecret != "" {
		AppConfig.Auth.GoogleClientSecret = clientSecret
	}

	if redirectURL := os.Getenv("MT_OAUTH_REDIRECT_URL"); redirectURL != "" {
		AppConfig.Auth.OAuthRedirectURL = redirectURL
	}
}

// GetAddressString returns the address string for the server to listen on
func GetAddressString() string {
	return fmt.Sprintf("%s:%d", AppConfig.Server.Host, AppConfig.Server.Port)
}
