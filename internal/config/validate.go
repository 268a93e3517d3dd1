package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLog(); err != nil {
		return err
	}
	return c.validateCategories()
}

func (c *Config) validateLog() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	return nil
}

func (c *Config) validateCategories() error {
	for ext, category := range c.Categories {
		if ext == "" || ext == "." {
			return fmt.Errorf("categories: extension key must not be empty")
		}
		if category == "" {
			return fmt.Errorf("categories: %s maps to an empty category name", ext)
		}
		if strings.ContainsAny(category, `/\`) {
			return fmt.Errorf("categories: %s maps to %q, which contains a path separator", ext, category)
		}
	}
	return nil
}
