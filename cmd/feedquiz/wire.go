package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pders01/feedquiz/internal/config"
	"github.com/pders01/feedquiz/internal/debuglog"
	"github.com/pders01/feedquiz/internal/feed"
	"github.com/pders01/feedquiz/internal/interaction"
	"github.com/pders01/feedquiz/internal/llm"
	"github.com/pders01/feedquiz/internal/notify"
	"github.com/pders01/feedquiz/internal/pipeline"
	"github.com/pders01/feedquiz/internal/quiz"
	"github.com/pders01/feedquiz/internal/search"
	"github.com/pders01/feedquiz/internal/storage"
)

// loadConfig reads and validates configuration and sets up logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), cfg.Log.File); err != nil {
		return nil, err
	}
	if cfg.Log.Format == "json" {
		debuglog.SetJSON(true)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds the components built from one configuration.
type app struct {
	cfg       *config.Config
	store     storage.Store
	index     search.Index
	formatter *notify.Formatter
	loc       *time.Location
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	formatter, err := notify.NewFormatter(cfg.Slack.DisplayZone)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Slack.DisplayZone)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening question store: %w", err)
	}

	return &app{cfg: cfg, store: store, formatter: formatter, loc: loc}, nil
}

func (a *app) Close() error {
	if a.index != nil {
		if err := a.index.Close(); err != nil {
			debuglog.Warnf("closing question index: %v", err)
		}
	}
	return a.store.Close()
}

// openIndex opens the question index, or returns nil when indexing is off.
func (a *app) openIndex() (search.Index, error) {
	if a.index != nil || a.cfg.Search.IndexPath == "" {
		return a.index, nil
	}
	idx, err := search.OpenIndex(a.cfg.Search.IndexPath)
	if err != nil {
		return nil, err
	}
	a.index = idx
	return idx, nil
}

func (a *app) pipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	provider, err := llm.NewProvider(ctx, a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	syllabus, err := quiz.LoadSyllabus()
	if err != nil {
		return nil, err
	}

	var indexer pipeline.Indexer
	idx, err := a.openIndex()
	if err != nil {
		debuglog.Warnf("question index unavailable, continuing without it: %v", err)
	} else if idx != nil {
		indexer = idx
	}

	return pipeline.New(pipeline.Deps{
		Source:     feed.NewHTTPSource(a.cfg.Feed.URL, feed.NewFetcher(a.cfg.Feed.HTTPTimeout, a.cfg.Feed.UserAgent)),
		Summarizer: quiz.NewSummarizer(provider),
		Classifier: quiz.NewClassifier(provider, syllabus),
		Generator:  quiz.NewGenerator(provider),
		Store:      a.store,
		Publisher:  notify.NewWebhook(a.cfg.Slack.WebhookURL, a.cfg.Slack.HTTPTimeout),
		Formatter:  a.formatter,
		Indexer:    indexer,
		Window:     a.cfg.Feed.Window,
	}), nil
}

func (a *app) interactionHandler() *interaction.Handler {
	return interaction.NewHandler(a.store, notify.NewResponder(a.cfg.Slack.HTTPTimeout), a.formatter)
}

// setup loads configuration and builds the app for a command.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg)
}
