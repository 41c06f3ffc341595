// Package core assembles the question pipeline and restarts it on failure.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/distractor"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/core/resolve"
	"github.com/agenthands/kgquiz/internal/core/selection"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/observability"
	"github.com/agenthands/kgquiz/internal/ranking"
	"github.com/agenthands/kgquiz/internal/resources"
)

const DefaultMaxAttempts = 25

// batchConcurrency caps how many questions GenerateN builds at once.
const batchConcurrency = 4

type Options struct {
	// MaxAttempts bounds restarts per question; 0 retries until ctx is done.
	MaxAttempts int
	// QuestionsPerEntity is the number of facts drawn from one entity. Only one
	// fact per question is supported, so larger values are clamped to 1.
	QuestionsPerEntity int
	// RestartRate throttles restarts per second; 0 disables throttling.
	RestartRate  float64
	RestartBurst int

	Top                int
	ExcludeNamespaces  []string
	Distractors        int
	YearCeiling        int
	DatatypeNamespaces []string
}

// QuizGenerator runs SelectEntity, ResolveLabel, SelectProperty,
// ResolveMetadata, ResolveAnswer and GenerateDistractors in order. Any stage
// failure discards the attempt and starts over with a new entity.
type QuizGenerator struct {
	Driver      driver.GraphDriver
	Tables      *resources.Tables
	Entities    *selection.EntitySelector
	Labels      *resolve.LabelResolver
	Properties  *selection.PropertySelector
	Metadata    *resolve.MetadataResolver
	Answers     *resolve.AnswerResolver
	Distractors *distractor.Generator

	// UUIDGenerator names attempts in logs.
	UUIDGenerator func() string

	opts    Options
	limiter *rate.Limiter
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewQuizGenerator(d driver.GraphDriver, ranker ranking.Ranker, tables *resources.Tables, r common.Rand, opts Options, metrics *observability.Metrics, logger *zap.Logger) *QuizGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if r == nil {
		r = common.NewTimeSeededRand()
	}
	if opts.MaxAttempts < 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.QuestionsPerEntity > 1 {
		logger.Warn("only one question per entity is supported, clamping",
			zap.Int("questions_per_entity", opts.QuestionsPerEntity))
		opts.QuestionsPerEntity = 1
	}
	if opts.QuestionsPerEntity <= 0 {
		opts.QuestionsPerEntity = 1
	}

	limit := rate.Inf
	if opts.RestartRate > 0 {
		limit = rate.Limit(opts.RestartRate)
	}

	filter := ranking.Filter{
		Prefixes:          tables.Prefixes,
		Blacklist:         tables.Blacklist,
		ExcludeNamespaces: opts.ExcludeNamespaces,
	}

	distractors := distractor.NewGenerator(d, tables.Classes, r, distractor.Options{
		Count:       opts.Distractors,
		YearCeiling: opts.YearCeiling,
	}, logger)

	g := &QuizGenerator{
		Driver:      d,
		Tables:      tables,
		Entities:    selection.NewEntitySelector(d, tables, r, logger),
		Labels:      resolve.NewLabelResolver(d),
		Properties:  selection.NewPropertySelector(d, ranker, filter, tables.Prefixes, opts.Top, r, logger),
		Metadata:    resolve.NewMetadataResolver(d, logger),
		Answers:     resolve.NewAnswerResolver(d, tables.Prefixes, opts.DatatypeNamespaces, logger),
		Distractors: distractors,
		opts:        opts,
		limiter:     rate.NewLimiter(limit, max(1, opts.RestartBurst)),
		metrics:     metrics,
		logger:      logger.Named("generator"),
	}
	g.UUIDGenerator = func() string { return uuid.New().String() }
	return g
}

func (g *QuizGenerator) BuildIndices(ctx context.Context) error {
	return g.Driver.BuildIndices(ctx)
}

// Generate produces one question, restarting the pipeline until an attempt
// succeeds, the attempt bound is hit or ctx is done. On exhaustion the error
// wraps common.ErrAttemptsExhausted and the last attempt's error.
func (g *QuizGenerator) Generate(ctx context.Context) (model.Question, error) {
	var lastErr error
	for attempt := 1; g.opts.MaxAttempts == 0 || attempt <= g.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := g.limiter.Wait(ctx); err != nil {
				return model.Question{}, g.cancelled(ctx, err, lastErr)
			}
		}
		if err := ctx.Err(); err != nil {
			return model.Question{}, g.cancelled(ctx, err, lastErr)
		}

		id := g.UUIDGenerator()
		q, err := g.attempt(ctx, id)
		if err == nil {
			g.metrics.AttemptSucceeded()
			g.logger.Info("question generated",
				zap.String("attempt_id", id),
				zap.Int("attempt", attempt),
				zap.String("question", q.Text))
			return q, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Question{}, g.cancelled(ctx, ctxErr, err)
		}

		lastErr = err
		stage := common.StageOf(err)
		g.metrics.AttemptFailed(string(stage))
		g.logger.Info("attempt failed, retrying with another entity",
			zap.String("attempt_id", id),
			zap.Int("attempt", attempt),
			zap.String("stage", string(stage)),
			zap.Error(err))
	}

	g.metrics.Exhausted()
	return model.Question{}, errors.Join(
		fmt.Errorf("%w after %d attempts", common.ErrAttemptsExhausted, g.opts.MaxAttempts),
		lastErr,
	)
}

// GenerateN produces n independent questions. It fails if any of them fails.
func (g *QuizGenerator) GenerateN(ctx context.Context, n int) ([]model.Question, error) {
	out := make([]model.Question, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(batchConcurrency)
	for i := range out {
		eg.Go(func() error {
			q, err := g.Generate(egCtx)
			if err != nil {
				return err
			}
			out[i] = q
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *QuizGenerator) cancelled(ctx context.Context, err, lastErr error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	if lastErr == nil {
		return fmt.Errorf("question generation cancelled: %w", err)
	}
	return fmt.Errorf("question generation cancelled: %w", errors.Join(err, lastErr))
}

// attempt runs the pipeline once under a child context, so lookups still in
// flight when it returns are cancelled.
func (g *QuizGenerator) attempt(parent context.Context, id string) (model.Question, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	log := g.logger.With(zap.String("attempt_id", id))
	var (
		entity model.Entity
		ids    []string
		props  []model.Property
		facts  []model.Fact
		alts   []string
	)

	steps := []struct {
		stage common.Stage
		run   func() error
	}{
		{common.StageSelectEntity, func() (err error) {
			entity.ID, err = g.Entities.Select(ctx)
			return err
		}},
		{common.StageResolveLabel, func() (err error) {
			entity.Label, err = g.Labels.Resolve(ctx, entity.ID)
			return err
		}},
		{common.StageSelectProperty, func() (err error) {
			ids, err = g.Properties.Select(ctx, entity, g.opts.QuestionsPerEntity)
			return err
		}},
		{common.StageResolveMetadata, func() (err error) {
			props, err = g.Metadata.ResolveAll(ctx, ids)
			return err
		}},
		{common.StageResolveAnswer, func() (err error) {
			facts, err = g.Answers.ResolveAll(ctx, entity, props)
			return err
		}},
		{common.StageGenerateDistractors, func() error {
			fact := facts[0]
			class, err := distractor.ExtractAnswerClass(fact.Property.Range, fact.CorrectAnswer, g.Tables.Classes, g.Tables.Prefixes)
			if err != nil {
				return err
			}
			alts, err = g.Distractors.Generate(ctx, class, fact.CorrectAnswer)
			return err
		}},
	}

	for _, step := range steps {
		start := time.Now()
		err := runGuarded(step.run)
		took := time.Since(start)
		g.metrics.ObserveStage(string(step.stage), took)
		log.Debug("stage finished",
			zap.String("stage", string(step.stage)),
			zap.Duration("took", took),
			zap.Bool("ok", err == nil))
		if err != nil {
			return model.Question{}, &common.StageError{Stage: step.stage, Err: err}
		}
	}

	log.Debug("attempt complete", zap.String("entity", entity.ID), zap.String("property", facts[0].Property.ID))
	return model.NewQuestion(entity, facts[0], alts), nil
}

// runGuarded turns a panic in run into an error so the attempt restarts instead
// of taking down the caller, which may be an errgroup goroutine in GenerateN.
func runGuarded(run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", common.ErrStagePanic, r)
		}
	}()
	return run()
}
