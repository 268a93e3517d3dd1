package config

import "strings"

func (c *Config) normalize() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}

	if c.Categories == nil {
		c.Categories = map[string]string{}
		return nil
	}
	normalized := make(map[string]string, len(c.Categories))
	for ext, category := range c.Categories {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = strings.TrimSpace(category)
	}
	c.Categories = normalized
	return nil
}
