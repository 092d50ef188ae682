package config

import (
	"fmt"
	"os"

	"github.com/fibreflow/workforce/pkg/formatting"
	"github.com/fibreflow/workforce/pkg/middleware"
	"github.com/fibreflow/workforce/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "FIBREFLOW_CORS_ENABLED",
	Origins:          "FIBREFLOW_CORS_ORIGINS",
	AllowedMethods:   "FIBREFLOW_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "FIBREFLOW_CORS_ALLOWED_HEADERS",
	AllowCredentials: "FIBREFLOW_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "FIBREFLOW_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "FIBREFLOW_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "FIBREFLOW_PAGINATION_MAX_PAGE_SIZE",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled: "FIBREFLOW_RATE_LIMIT_ENABLED",
	Rate:    "FIBREFLOW_RATE_LIMIT_RATE",
	Burst:   "FIBREFLOW_RATE_LIMIT_BURST",
}

var authEnv = &middleware.AuthEnv{
	Enabled:  "FIBREFLOW_AUTH_ENABLED",
	Issuer:   "FIBREFLOW_AUTH_ISSUER",
	ClientID: "FIBREFLOW_AUTH_CLIENT_ID",
}

// APIConfig holds API routing, CORS, pagination, throttling, and auth
// settings.
type APIConfig struct {
	BasePath      string                     `toml:"base_path"`
	MaxUploadSize string                     `toml:"max_upload_size"`
	CORS          middleware.CORSConfig      `toml:"cors"`
	Pagination    pagination.Config          `toml:"pagination"`
	RateLimit     middleware.RateLimitConfig `toml:"rate_limit"`
	Auth          middleware.AuthConfig      `toml:"auth"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.RateLimit.Merge(&overlay.RateLimit)
	c.Auth.Merge(&overlay.Auth)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("FIBREFLOW_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("FIBREFLOW_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
