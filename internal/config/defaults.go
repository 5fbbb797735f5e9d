package config

import "github.com/inkstone/quill/internal/models"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/quill/data/corpus.db"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "http"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 768
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Retrieval.LexicalIndexType == "" {
		cfg.Retrieval.LexicalIndexType = "memory"
	}
	if cfg.Retrieval.TopKCandidates == 0 {
		cfg.Retrieval.TopKCandidates = 100
	}
	if cfg.Retrieval.DefaultLimit == 0 {
		cfg.Retrieval.DefaultLimit = models.DefaultQueryLimit
	}
	if cfg.Retrieval.MaxLimit == 0 {
		cfg.Retrieval.MaxLimit = models.DefaultMaxQueryLimit
	}
	if cfg.Retrieval.SemanticWeight == 0 && cfg.Retrieval.LexicalWeight == 0 {
		cfg.Retrieval.SemanticWeight = models.DefaultSemanticWeight
		cfg.Retrieval.LexicalWeight = models.DefaultLexicalWeight
	}
	if cfg.Retrieval.ChunkSize == 0 {
		cfg.Retrieval.ChunkSize = 256
	}
	if cfg.Retrieval.ChunkOverlap == 0 {
		cfg.Retrieval.ChunkOverlap = 32
	}
	if cfg.Coverage.MinSources == 0 {
		cfg.Coverage.MinSources = 2
	}
	cfg.Weighting.ApplyDefaults()
}
