package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Config struct {
	Server struct {
		Host    string `json:"host"`
		Port    int    `json:"port"`
		Subpath string `json:"subpath"`
	} `json:"server"`
	Embedding struct {
		URL             string `json:"url"`
		Model           string `json:"model"`
		TimeoutSeconds  int    `json:"timeout_seconds"`
		CacheTTLMinutes int    `json:"cache_ttl_minutes"`
	} `json:"embedding"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	TaskStore struct {
		Driver     string `json:"driver"`
		DSN        string `json:"dsn"`
		SQLitePath string `json:"sqlite_path"`
	} `json:"taskstore"`
	Qdrant struct {
		URL        string `json:"url"`
		Collection string `json:"collection"`
		APIKey     string `json:"api_key"`
	} `json:"qdrant"`
	Retrieval struct {
		SimilarityThreshold float64 `json:"similarity_threshold"`
	} `json:"retrieval"`
	Dialogue struct {
		SessionTTLMinutes int `json:"session_ttl_minutes"`
	} `json:"dialogue"`
}

const (
	defaultSimilarityThreshold = 0.7
	defaultEmbedTimeoutSeconds = 10
	defaultCacheTTLMinutes     = 60
	defaultSessionTTLMinutes   = 30
)

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		applyDefaults(&c)
		// Minimal validation
		if err := validateTaskStore(&c); err != nil {
			cfgErr = err
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.Retrieval.SimilarityThreshold <= 0 {
		c.Retrieval.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Embedding.TimeoutSeconds <= 0 {
		c.Embedding.TimeoutSeconds = defaultEmbedTimeoutSeconds
	}
	if c.Embedding.CacheTTLMinutes <= 0 {
		c.Embedding.CacheTTLMinutes = defaultCacheTTLMinutes
	}
	if c.Dialogue.SessionTTLMinutes <= 0 {
		c.Dialogue.SessionTTLMinutes = defaultSessionTTLMinutes
	}
}

func validateTaskStore(c *Config) error {
	switch c.TaskStore.Driver {
	case "", "static":
		return nil
	case "postgres":
		if c.TaskStore.DSN == "" {
			return fmt.Errorf("taskstore driver %q requires dsn", c.TaskStore.Driver)
		}
	case "sqlite":
		if c.TaskStore.SQLitePath == "" {
			return fmt.Errorf("taskstore driver %q requires sqlite_path", c.TaskStore.Driver)
		}
	case "qdrant":
		if c.Qdrant.URL == "" || c.Qdrant.Collection == "" {
			return fmt.Errorf("taskstore driver %q requires qdrant url and collection", c.TaskStore.Driver)
		}
	default:
		return fmt.Errorf("unknown taskstore driver %q", c.TaskStore.Driver)
	}
	return nil
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
