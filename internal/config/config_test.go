package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "./test.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_appliesDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./test.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Embedding.Provider != "http" {
		t.Errorf("default provider = %q, want http", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("default dimensions = %d, want 768", cfg.Embedding.Dimensions)
	}
	if cfg.Retrieval.LexicalIndexType != "memory" {
		t.Errorf("default lexical_index_type = %q, want memory", cfg.Retrieval.LexicalIndexType)
	}
	if cfg.Retrieval.SemanticWeight != 0.7 || cfg.Retrieval.LexicalWeight != 0.3 {
		t.Errorf("default fusion weights = %v/%v, want 0.7/0.3",
			cfg.Retrieval.SemanticWeight, cfg.Retrieval.LexicalWeight)
	}
	if cfg.Retrieval.TopKCandidates != 100 {
		t.Errorf("default top_k_candidates = %d, want 100", cfg.Retrieval.TopKCandidates)
	}
	if cfg.Retrieval.ChunkSize != 256 || cfg.Retrieval.ChunkOverlap != 32 {
		t.Errorf("default chunking = %d/%d, want 256/32",
			cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
	}
	if cfg.Coverage.MinSources != 2 {
		t.Errorf("default min_sources = %d, want 2", cfg.Coverage.MinSources)
	}
	if cfg.Weighting.RecencyWeight != 0.2 || cfg.Weighting.QualityWeight != 0.2 {
		t.Errorf("default weighting = %+v", cfg.Weighting)
	}
}

func TestLoad_explicitWeightsKept(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./test.db"
retrieval:
  semantic_weight: 0.9
  lexical_weight: 0.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Retrieval.SemanticWeight != 0.9 || cfg.Retrieval.LexicalWeight != 0.1 {
		t.Errorf("explicit fusion weights overwritten: %v/%v",
			cfg.Retrieval.SemanticWeight, cfg.Retrieval.LexicalWeight)
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  database_path: "./data/corpus.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "data", "corpus.db")
	if cfg.Storage.DatabasePath != want {
		t.Errorf("database_path = %q, want %q", cfg.Storage.DatabasePath, want)
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_malformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoad_invalidLexicalIndexType(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./test.db"
retrieval:
  lexical_index_type: "faiss"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "lexical_index_type") {
		t.Errorf("expected lexical_index_type error, got %v", err)
	}
}

func TestLoad_invalidEmbeddingProvider(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./test.db"
embedding:
  provider: "openai"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "provider") {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestLoad_invalidWeighting(t *testing.T) {
	path := writeConfig(t, `
storage:
  database_path: "./test.db"
weighting:
  decay_rate: -1.0
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "weighting") {
		t.Errorf("expected weighting error, got %v", err)
	}
}
