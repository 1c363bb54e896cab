package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vedabase-tools/namamala/internal/config"
	"github.com/vedabase-tools/namamala/internal/extract"
	"github.com/vedabase-tools/namamala/internal/home"
	"github.com/vedabase-tools/namamala/internal/namestore"
	"github.com/vedabase-tools/namamala/internal/pipeline"
	"github.com/vedabase-tools/namamala/internal/providers"
	"github.com/vedabase-tools/namamala/internal/vedabase"
)

// services bundles the wired components for a command invocation.
type services struct {
	logger    *slog.Logger
	home      *home.Dir
	cm        *config.Manager
	db        *vedabase.DB
	store     *namestore.Store
	extractor *extract.Extractor
	pipeline  *pipeline.Pipeline
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// openCorpus wires just the home dir, config, and corpus database,
// for commands that do not call the LLM.
func openCorpus() (*home.Dir, *config.Manager, *vedabase.DB, *slog.Logger, error) {
	logger := newLogger()

	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, nil, nil, err
	}

	cfgPath := cfgFile
	if cfgPath == "" && h.ConfigExists() {
		cfgPath = h.ConfigPath()
	}
	cm, err := config.NewManager(cfgPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	path := dbPath
	if path == "" {
		path = cm.Get().Corpus.DatabasePath
	}
	if path == "" {
		path = filepath.Join(h.Path(), "vedabase.db")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("vedabase file not found at %s (set --db or corpus.database_path)", path)
	}

	db, err := vedabase.Open(vedabase.Config{
		Path:        path,
		CatalogPath: h.CatalogPath(),
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return h, cm, db, logger, nil
}

// buildServices wires the full extraction stack.
func buildServices() (*services, error) {
	h, cm, db, logger, err := openCorpus()
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	providerName := cfg.Defaults.LLMProvider
	pcfg, ok := cfg.GetLLMProvider(providerName)
	if !ok {
		db.Close()
		return nil, fmt.Errorf("default LLM provider %q not configured", providerName)
	}
	if !pcfg.Enabled {
		db.Close()
		return nil, fmt.Errorf("default LLM provider %q is disabled", providerName)
	}

	registry := providers.NewRegistry()
	registry.SetLogger(logger)
	if err := registry.LoadFromConfig(cfg.ToProviderRegistryConfig()); err != nil {
		db.Close()
		return nil, err
	}
	client, err := registry.GetLLM(providerName)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := namestore.New(h.NamesPath(), logger)
	extractor := extract.New(extract.Config{
		Client:      client,
		Model:       pcfg.Model,
		Temperature: cfg.Pipeline.Temperature,
		MaxTokens:   cfg.Pipeline.MaxTokens,
		Logger:      logger,
	})
	pipe := pipeline.New(pipeline.Config{
		Corpus:    db,
		Extractor: extractor,
		Store:     store,
		BatchSize: cfg.Pipeline.BatchSize,
		Logger:    logger,
	})

	return &services{
		logger:    logger,
		home:      h,
		cm:        cm,
		db:        db,
		store:     store,
		extractor: extractor,
		pipeline:  pipe,
	}, nil
}

func (s *services) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
