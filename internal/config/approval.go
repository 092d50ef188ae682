package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvApprovalMaxBatchSize = "FIBREFLOW_APPROVAL_MAX_BATCH_SIZE"
	EnvApprovalWorkers      = "FIBREFLOW_APPROVAL_WORKERS"
)

// ApprovalConfig holds batch approval processing settings.
type ApprovalConfig struct {
	MaxBatchSize int `toml:"max_batch_size"`
	Workers      int `toml:"workers"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ApprovalConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ApprovalConfig) Merge(overlay *ApprovalConfig) {
	if overlay.MaxBatchSize != 0 {
		c.MaxBatchSize = overlay.MaxBatchSize
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}

func (c *ApprovalConfig) loadDefaults() {
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = 50
	}
	if c.Workers == 0 {
		c.Workers = 8
	}
}

func (c *ApprovalConfig) loadEnv() {
	if v := os.Getenv(EnvApprovalMaxBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBatchSize = n
		}
	}
	if v := os.Getenv(EnvApprovalWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

func (c *ApprovalConfig) validate() error {
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("invalid max_batch_size: %d", c.MaxBatchSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return nil
}
