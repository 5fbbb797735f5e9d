// Package config provides configuration loading and structs for the Quill server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkstone/quill/internal/weighting"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool             `yaml:"debug"`
	Server    ServerConfig     `yaml:"server"`
	Storage   StorageConfig    `yaml:"storage"`
	Embedding EmbeddingConfig  `yaml:"embedding"`
	Retrieval RetrievalConfig  `yaml:"retrieval"`
	Weighting weighting.Config `yaml:"weighting"`
	Coverage  CoverageConfig   `yaml:"coverage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the corpus database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// EmbeddingConfig holds embedding client settings. Provider is "http"
// (Ollama-compatible endpoint) or "mock" (deterministic, for development).
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	CacheSize  int    `yaml:"cache_size"`
}

// RetrievalConfig holds hybrid search and chunking settings.
type RetrievalConfig struct {
	LexicalIndexType string  `yaml:"lexical_index_type"`
	TopKCandidates   int     `yaml:"top_k_candidates"`
	DefaultLimit     int     `yaml:"default_limit"`
	MaxLimit         int     `yaml:"max_limit"`
	SemanticWeight   float64 `yaml:"semantic_weight"`
	LexicalWeight    float64 `yaml:"lexical_weight"`
	ChunkSize        int     `yaml:"chunk_size"`
	ChunkOverlap     int     `yaml:"chunk_overlap"`
}

// CoverageConfig holds outline coverage analysis settings.
type CoverageConfig struct {
	MinSources int `yaml:"min_sources"`
}

// Load reads and parses the config file at path, applies defaults, expands
// paths, and validates. Structural errors (bad weighting config, unknown
// lexical index type) fail here, before anything is constructed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Validate checks structural invariants that defaults cannot fix.
func (c *Config) Validate() error {
	if err := c.Weighting.Validate(); err != nil {
		return fmt.Errorf("invalid weighting config: %w", err)
	}
	switch c.Retrieval.LexicalIndexType {
	case "", "memory", "bleve":
	default:
		return fmt.Errorf("invalid lexical_index_type: %q (supported: memory, bleve)", c.Retrieval.LexicalIndexType)
	}
	switch c.Embedding.Provider {
	case "", "mock", "http":
	default:
		return fmt.Errorf("invalid embedding provider: %q (supported: mock, http)", c.Embedding.Provider)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
