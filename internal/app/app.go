// Package app wires configuration into a ready QuizGenerator.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/config"
	"github.com/agenthands/kgquiz/internal/core"
	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/llm"
	"github.com/agenthands/kgquiz/internal/observability"
	"github.com/agenthands/kgquiz/internal/ranking"
	"github.com/agenthands/kgquiz/internal/resources"
)

type App struct {
	Config    *config.Config
	Tables    *resources.Tables
	Driver    driver.GraphDriver
	Ranker    ranking.Ranker
	Generator *core.QuizGenerator
	Metrics   *observability.Metrics
	Logger    *zap.Logger

	closers []io.Closer
}

// Build loads the resource tables and connects the graph and ranking backends.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tables, err := resources.Load(resources.Paths{
		Blacklist: cfg.Resources.Blacklist,
		Prefixes:  cfg.Resources.Prefixes,
		Classes:   cfg.Resources.Classes,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("resource tables loaded",
		zap.Int("prefixes", tables.Prefixes.Len()),
		zap.Int("classes", tables.Classes.Len()),
		zap.Int("entities", tables.Classes.Total()),
		zap.Int("blacklisted", len(tables.Blacklist)))

	a := &App{Config: cfg, Tables: tables, Metrics: observability.NewMetrics(), Logger: logger}

	a.Driver, err = NewDriver(ctx, cfg, tables, logger)
	if err != nil {
		return nil, err
	}

	a.Ranker, err = a.newRanker(ctx, cfg, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Generator = core.NewQuizGenerator(a.Driver, a.Ranker, tables, common.NewTimeSeededRand(), GeneratorOptions(cfg), a.Metrics, logger)
	if err := a.Generator.BuildIndices(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("failed to prepare graph backend: %w", err)
	}
	return a, nil
}

// NewDriver opens the configured knowledge graph backend.
func NewDriver(ctx context.Context, cfg *config.Config, tables *resources.Tables, logger *zap.Logger) (driver.GraphDriver, error) {
	switch cfg.Graph.Backend {
	case "memgraph":
		return driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, tables.Prefixes, logger)
	case "sparql":
		return driver.NewSPARQLDriver(driver.SPARQLOptions{
			Endpoint:          cfg.SPARQL.Endpoint,
			DefaultGraph:      cfg.SPARQL.DefaultGraph,
			Timeout:           cfg.SPARQL.Timeout(),
			RequestsPerSecond: cfg.SPARQL.RequestsPerSecond,
			Logger:            logger,
		}, tables.Prefixes)
	default:
		return nil, fmt.Errorf("unsupported graph backend: %s", cfg.Graph.Backend)
	}
}

func (a *App) newRanker(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ranking.Ranker, error) {
	switch cfg.Ranking.Backend {
	case "llm":
		client, err := llm.NewClient(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		if c, ok := client.(io.Closer); ok {
			a.closers = append(a.closers, c)
		}
		return llm.NewPropertyRanker(client, logger), nil
	case "http":
		return ranking.NewHTTPRanker(cfg.Ranking.Endpoint, cfg.Ranking.Timeout(), logger)
	default:
		return nil, fmt.Errorf("unsupported ranking backend: %s", cfg.Ranking.Backend)
	}
}

// GeneratorOptions maps the pipeline and ranking sections onto core.Options.
func GeneratorOptions(cfg *config.Config) core.Options {
	return core.Options{
		MaxAttempts:        cfg.Pipeline.MaxAttempts,
		QuestionsPerEntity: cfg.Pipeline.QuestionsPerEntity,
		RestartRate:        cfg.Pipeline.RestartRate,
		RestartBurst:       cfg.Pipeline.RestartBurst,
		Top:                cfg.Ranking.Top,
		ExcludeNamespaces:  cfg.Ranking.ExcludeNamespaces,
		Distractors:        cfg.Pipeline.Distractors,
		YearCeiling:        cfg.Pipeline.YearCeiling,
		DatatypeNamespaces: cfg.Pipeline.DatatypeNamespaces,
	}
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	if a.Driver != nil {
		errs = append(errs, a.Driver.Close(ctx))
	}
	return errors.Join(errs...)
}
