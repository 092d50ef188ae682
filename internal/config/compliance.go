package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvComplianceMonitorEnabled  = "FIBREFLOW_COMPLIANCE_MONITOR_ENABLED"
	EnvComplianceRefreshInterval = "FIBREFLOW_COMPLIANCE_REFRESH_INTERVAL"
)

// ComplianceConfig holds background compliance monitor settings.
type ComplianceConfig struct {
	MonitorEnabled  bool   `toml:"monitor_enabled"`
	RefreshInterval string `toml:"refresh_interval"`
}

// RefreshIntervalDuration returns RefreshInterval as a time.Duration.
func (c *ComplianceConfig) RefreshIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ComplianceConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. MonitorEnabled always applies.
func (c *ComplianceConfig) Merge(overlay *ComplianceConfig) {
	c.MonitorEnabled = overlay.MonitorEnabled
	if overlay.RefreshInterval != "" {
		c.RefreshInterval = overlay.RefreshInterval
	}
}

func (c *ComplianceConfig) loadDefaults() {
	if c.RefreshInterval == "" {
		c.RefreshInterval = "5m"
	}
}

func (c *ComplianceConfig) loadEnv() {
	if v := os.Getenv(EnvComplianceMonitorEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.MonitorEnabled = enabled
		}
	}
	if v := os.Getenv(EnvComplianceRefreshInterval); v != "" {
		c.RefreshInterval = v
	}
}

func (c *ComplianceConfig) validate() error {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid refresh_interval: %w", err)
	}
	if d < time.Second {
		return fmt.Errorf("refresh_interval too short: %s", c.RefreshInterval)
	}
	return nil
}
