package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config manages migration tool configuration
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new configuration manager
func New() *Config {
	return &Config{
		values: make(map[string]string),
	}
}

// Load reads a JSON config file into a new Config. The file is a flat
// object of string keys; non-string values are stringified.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	c := New()
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			values[k] = val
		case float64:
			values[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(val)
		case nil:
			values[k] = ""
		default:
			b, _ := json.Marshal(val)
			values[k] = string(b)
		}
	}
	c.Update(values)
	return c, nil
}

// Get retrieves a configuration value
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetDefault retrieves a configuration value, falling back when unset
func (c *Config) GetDefault(key, fallback string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[key]; ok && v != "" {
		return v
	}
	return fallback
}

// GetInt retrieves an integer configuration value, falling back when
// unset or unparseable
func (c *Config) GetInt(key string, fallback int) int {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetAll returns a copy of all configuration values
func (c *Config) GetAll() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copy := make(map[string]string)
	for k, v := range c.values {
		copy[k] = v
	}
	return copy
}

// Update updates configuration values
func (c *Config) Update(values map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range values {
		c.values[k] = v
	}
}
