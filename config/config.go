package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Journal struct {
		Dir        string   `yaml:"dir"`
		Extensions []string `yaml:"extensions"`
		IncludePDF bool     `yaml:"include_pdf"`
	} `yaml:"journal"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Ollama struct {
		BaseURL        string `yaml:"base_url"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"ollama"`
	Embeddings struct {
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"embeddings"`
	Processing struct {
		ChunkWindow  int `yaml:"chunk_window"`
		ChunkOverlap int `yaml:"chunk_overlap"`
		TopK         int `yaml:"top_k"`
	} `yaml:"processing"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".journal-ai", "config.yaml")
}

// Load loads configuration from path, or from the default location when
// path is empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Journal.Dir = ExpandHome(cfg.Journal.Dir)
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return os.Getenv("HOME")
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return path
}

// Save saves configuration to path, or to the default location when
// path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}

	homeDir := os.Getenv("HOME")
	cfg.Journal.Dir = filepath.Join(homeDir, "journal")
	cfg.Journal.Extensions = []string{".txt", ".org"}
	cfg.Journal.IncludePDF = false
	cfg.Storage.Path = filepath.Join(homeDir, ".journal-ai", "journal.db")
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.Model = ""
	cfg.Ollama.TimeoutSeconds = 120
	cfg.Embeddings.Model = "nomic-embed-text"
	cfg.Embeddings.TimeoutSeconds = 30
	cfg.Processing.ChunkWindow = 500
	cfg.Processing.ChunkOverlap = 50
	cfg.Processing.TopK = 5

	return cfg
}

// GenerationTimeout returns the generation request timeout.
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSeconds) * time.Second
}

// EmbeddingTimeout returns the embedding request timeout.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embeddings.TimeoutSeconds) * time.Second
}
