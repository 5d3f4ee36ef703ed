package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScanning(); err != nil {
		return err
	}
	if err := c.validateDedup(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScanning() error {
	if c.Scanning.FrameIntervalMS < 0 {
		return errors.New("scanning.frame_interval_ms must not be negative")
	}
	return nil
}

func (c *Config) validateDedup() error {
	if c.Dedup.SimilarityThreshold <= 0 || c.Dedup.SimilarityThreshold >= 1 {
		return errors.New("dedup.similarity_threshold must be between 0 and 1 exclusive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
