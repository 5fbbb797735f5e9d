// Package main is the Quill CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inkstone/quill/internal/cli"
	"github.com/inkstone/quill/internal/config"
	"github.com/inkstone/quill/internal/coverage"
	"github.com/inkstone/quill/internal/embedding"
	"github.com/inkstone/quill/internal/engine"
	"github.com/inkstone/quill/internal/grounding"
	"github.com/inkstone/quill/internal/ingest"
	"github.com/inkstone/quill/internal/models"
	"github.com/inkstone/quill/internal/server"
	"github.com/inkstone/quill/internal/snapshot"
	"github.com/inkstone/quill/internal/storage"
	"github.com/inkstone/quill/internal/weighting"
	"github.com/inkstone/quill/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/quill/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "ingest":
		runIngest()
	case "delete":
		runDelete()
	case "outline":
		runOutline()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("quill version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	watchOpts := []snapshot.WatcherOption{}
	if debugMode {
		watchOpts = append(watchOpts, snapshot.WithWatcherLogger(logger))
	}
	watch := snapshot.NewWatcher(cfg.Storage.DatabasePath, components.Snapshots, watchOpts...)
	if err := watch.Start(watchCtx); err != nil {
		logger.Warn("database watcher not started", zap.Error(err))
	}

	srv := server.NewServer(
		components.Engine,
		components.Analyzer,
		components.Validator,
		components.Ingestor,
		components.Snapshots,
		components.Storage,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watch.Stop()
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: quill search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  quill search distributed consensus
  quill search --limit 20 "error handling"
  quill search --recency-weight 0.3 --quality-weight 0.2 raft
  quill search --quality preferred --output json raft
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	limit := fs.Int("limit", 10, "number of results")
	semanticWeight := fs.Float64("semantic-weight", 0, "semantic score weight (0 = config default)")
	lexicalWeight := fs.Float64("lexical-weight", 0, "lexical score weight (0 = config default)")
	recencyWeight := fs.Float64("recency-weight", 0, "recency weight (0 = disabled)")
	qualityWeight := fs.Float64("quality-weight", 0, "quality weight (0 = disabled)")
	quality := fs.String("quality", "", "filter by quality rating (deprecated, supplemental, reference, preferred)")
	format := fs.String("format", "", "filter by document format")
	tags := fs.String("tags", "", "filter by tags (comma-separated, any match)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	outFmt, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{
		Query:          queryStr,
		Limit:          *limit,
		SemanticWeight: *semanticWeight,
		LexicalWeight:  *lexicalWeight,
		RecencyWeight:  *recencyWeight,
		QualityWeight:  *qualityWeight,
	}
	if *quality != "" || *format != "" || *tags != "" {
		filter := &models.MetadataFilter{
			Quality: models.QualityRating(*quality),
			Format:  *format,
		}
		if *tags != "" {
			filter.Tags = strings.Split(*tags, ",")
		}
		searchQuery.Filter = filter
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, searchQuery)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, outFmt); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct storage access (when server is not running).
	cfg, _, err := loadConfig(*configPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	start := time.Now()
	var results []*models.SearchResult
	if searchQuery.RecencyWeight > 0 || searchQuery.QualityWeight > 0 {
		results, err = components.Engine.SearchWithWeights(ctx, searchQuery)
	} else {
		results, err = components.Engine.Search(ctx, searchQuery)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     queryStr,
	}
	if err := cli.WriteSearchResults(os.Stdout, response, outFmt); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	title := fs.String("title", "", "document title (default: file name)")
	quality := fs.String("quality", "", "quality rating (deprecated, supplemental, reference, preferred)")
	tags := fs.String("tags", "", "tags (comma-separated)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: quill ingest [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}
	docTitle := *title
	if docTitle == "" {
		docTitle = filepath.Base(path)
	}
	info, _ := os.Stat(path)
	meta := models.ChunkMetadata{
		Quality:    models.QualityRating(*quality),
		Format:     strings.TrimPrefix(filepath.Ext(path), "."),
		SourceFile: path,
	}
	if info != nil {
		meta.ModifiedAt = info.ModTime()
	}
	if *tags != "" {
		meta.Tags = strings.Split(*tags, ",")
	}

	doc, err := components.Ingestor.IngestDocument(context.Background(), &models.DocumentInput{
		Title:    docTitle,
		Content:  string(content),
		Metadata: meta,
	})
	if err != nil {
		fmt.Printf("Ingest failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document ingested: %s\n", doc.ID)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: quill delete [flags] <document-id>")
		os.Exit(1)
	}
	docID := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if err := components.Ingestor.DeleteDocument(context.Background(), docID); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document deleted: %s\n", docID)
}

func runOutline() {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	keywordsFlag := fs.String("keywords", "", "grounding keywords (comma-separated)")
	validate := fs.Bool("validate", true, "apply grounding validation after coverage analysis")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: quill outline [flags] <outline.json>")
		os.Exit(1)
	}
	path := fs.Arg(0)
	outFmt, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read outline: %v\n", err)
		os.Exit(1)
	}
	var outline models.Outline
	if err := json.Unmarshal(data, &outline); err != nil {
		fmt.Printf("Failed to parse outline: %v\n", err)
		os.Exit(1)
	}
	var keywords []string
	if *keywordsFlag != "" {
		keywords = strings.Split(*keywordsFlag, ",")
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	ctx := context.Background()
	if err := components.Analyzer.AnalyzeOutline(ctx, &outline, keywords); err != nil {
		fmt.Printf("Coverage analysis failed: %v\n", err)
		os.Exit(1)
	}
	if *validate {
		components.Validator.Validate(&outline, keywords)
	}
	if err := cli.WriteOutline(os.Stdout, &outline, outFmt); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if outline.Rejected {
		os.Exit(2)
	}
}

// statusResponse is the shape of GET /api/v1/status.
type statusResponse struct {
	Documents       int64     `json:"documents"`
	Chunks          int64     `json:"chunks"`
	SnapshotChunks  int       `json:"snapshot_chunks"`
	SnapshotBuiltAt time.Time `json:"snapshot_built_at"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		docCount, err := components.Storage.CountDocuments(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count documents failed: %v\n", err)
			os.Exit(1)
		}
		chunkCount, err := components.Storage.CountChunks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count chunks failed: %v\n", err)
			os.Exit(1)
		}
		stats := components.Snapshots.Stats()
		status = statusResponse{
			Documents:       docCount,
			Chunks:          chunkCount,
			SnapshotChunks:  stats.Chunks,
			SnapshotBuiltAt: stats.BuiltAt,
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("documents:        %d\n", status.Documents)
		fmt.Printf("chunks:           %d\n", status.Chunks)
		fmt.Printf("snapshot_chunks:  %d\n", status.SnapshotChunks)
		if !status.SnapshotBuiltAt.IsZero() {
			fmt.Printf("snapshot_built:   %s\n", status.SnapshotBuiltAt.Format(time.RFC3339))
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Storage   storage.Store
	Embedder  embedding.Embedder
	Snapshots *snapshot.Manager
	Engine    *engine.Engine
	Analyzer  *coverage.Analyzer
	Validator *grounding.Validator
	Ingestor  *ingest.Ingestor
}

func (c *Components) Close() {
	if c.Snapshots != nil {
		_ = c.Snapshots.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	store, err := storage.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	switch cfg.Embedding.Provider {
	case "mock":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	default:
		embedder = embedding.NewHTTPEmbedder(embedding.HTTPConfig{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	}
	embedder = embedding.NewCachedEmbedder(embedder, cfg.Embedding.CacheSize)

	builderOpts := []snapshot.BuilderOption{}
	managerOpts := []snapshot.ManagerOption{snapshot.WithManagerLogger(logger)}
	if debug {
		builderOpts = append(builderOpts, snapshot.WithBuilderLogger(logger))
	}
	builder := snapshot.NewBuilder(store, cfg.Embedding.Dimensions, &cfg.Retrieval, builderOpts...)
	snapshots, err := snapshot.NewManager(context.Background(), builder, managerOpts...)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to build initial snapshot: %w", err)
	}

	weighter, err := weighterFromConfig(cfg)
	if err != nil {
		_ = snapshots.Close()
		_ = store.Close()
		return nil, err
	}

	engineOpts := []engine.Option{}
	if debug {
		engineOpts = append(engineOpts, engine.WithLogger(logger))
	}
	eng := engine.NewEngine(embedder, snapshots, snapshots, weighter, &cfg.Retrieval, engineOpts...)

	analyzerOpts := []coverage.Option{}
	validatorOpts := []grounding.Option{}
	if debug {
		analyzerOpts = append(analyzerOpts, coverage.WithLogger(logger))
		validatorOpts = append(validatorOpts, grounding.WithLogger(logger))
	}
	analyzer := coverage.NewAnalyzer(func(ctx context.Context, query string, n int) ([]*models.SearchResult, error) {
		return eng.Search(ctx, &models.SearchQuery{Query: query, Limit: n})
	}, cfg.Coverage.MinSources, analyzerOpts...)
	validator := grounding.NewValidator(validatorOpts...)

	ingestorOpts := []ingest.IngestorOption{}
	if debug {
		ingestorOpts = append(ingestorOpts, ingest.WithLogger(logger))
	}
	ingestor := ingest.NewIngestor(store, embedder, &cfg.Retrieval, ingestorOpts...)

	return &Components{
		Storage:   store,
		Embedder:  embedder,
		Snapshots: snapshots,
		Engine:    eng,
		Analyzer:  analyzer,
		Validator: validator,
		Ingestor:  ingestor,
	}, nil
}

func weighterFromConfig(cfg *config.Config) (*weighting.Weighter, error) {
	w, err := weighting.NewWeighter(&cfg.Weighting)
	if err != nil {
		return nil, fmt.Errorf("invalid weighting config: %w", err)
	}
	return w, nil
}

func printUsage() {
	fmt.Println(`quill - Corpus retrieval and grounding engine

Usage:
  quill server [flags]              Start the HTTP server
  quill search [flags] <query>      Search the corpus
  quill ingest [flags] <file>       Ingest a document
  quill delete [flags] <id>         Delete a document
  quill outline [flags] <file>      Analyze and validate an outline (JSON)
  quill status [flags]              Show corpus and snapshot status
  quill version                     Show version
  quill help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/quill/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string           Config file path (for direct storage mode)
  --server string           Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --limit int               Number of results (default: 10)
  --semantic-weight float   Semantic score weight (0 = config default)
  --lexical-weight float    Lexical score weight (0 = config default)
  --recency-weight float    Recency weight (0 = disabled)
  --quality-weight float    Quality weight (0 = disabled)
  --quality string          Filter by quality rating
  --format string           Filter by document format
  --tags string             Filter by tags (comma-separated)
  --output string           Output format: text or json (default: text)

Outline Flags:
  --config string     Config file path
  --keywords string   Grounding keywords (comma-separated)
  --validate          Apply grounding validation (default: true)
  --output string     Output format: text or json (default: text)

Examples:
  quill server
  quill search "retry with backoff"
  quill search --recency-weight 0.3 deployment checklist
  quill ingest --quality preferred --tags go,style notes/style.md
  quill outline --keywords kubernetes,helm drafts/outline.json
  quill status --output json`)
}
