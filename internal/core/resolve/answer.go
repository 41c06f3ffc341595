package resolve

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/resources"
	"github.com/agenthands/kgquiz/internal/vocab"
)

// AnswerResolver fetches the correct answer of an (entity, property) pair. A
// datatype range yields the literal value; a class range yields the English
// label of the referenced resource.
type AnswerResolver struct {
	driver             driver.GraphDriver
	prefixes           *resources.PrefixTable
	datatypeNamespaces []string
	logger             *zap.Logger
}

func NewAnswerResolver(d driver.GraphDriver, prefixes *resources.PrefixTable, datatypeNamespaces []string, logger *zap.Logger) *AnswerResolver {
	if len(datatypeNamespaces) == 0 {
		datatypeNamespaces = vocab.DefaultDatatypeNamespaces
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerResolver{
		driver:             d,
		prefixes:           prefixes,
		datatypeNamespaces: datatypeNamespaces,
		logger:             logger.Named("answer"),
	}
}

func (r *AnswerResolver) Resolve(ctx context.Context, entity model.Entity, prop model.Property) (model.Fact, error) {
	query := driver.QueryResourceAnswer
	if vocab.IsDatatype(r.prefixes.Normalize(prop.Range), r.datatypeNamespaces) {
		query = driver.QueryLiteralAnswer
	}

	res, err := r.driver.ExecuteQuery(ctx, query, driver.Params{
		"resource": entity.ID,
		"property": prop.ID,
	})
	if err != nil {
		return model.Fact{}, fmt.Errorf("failed to resolve %s of %s: %w", prop.ID, entity.ID, err)
	}
	v, ok := res.First("answer")
	if !ok || v.Value == "" {
		return model.Fact{}, common.Empty("%s of %s", prop.ID, entity.ID)
	}

	r.logger.Debug("answer resolved",
		zap.String("entity", entity.ID),
		zap.String("property", prop.ID),
		zap.String("query", string(query)),
		zap.String("answer", v.Value))
	return model.Fact{Property: prop, CorrectAnswer: v.Value}, nil
}

// ResolveAll resolves the answers for props concurrently, ordered by sorted
// property identifier.
func (r *AnswerResolver) ResolveAll(ctx context.Context, entity model.Entity, props []model.Property) ([]model.Fact, error) {
	sorted := append([]model.Property(nil), props...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out := make([]model.Fact, len(sorted))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range sorted {
		eg.Go(func() error {
			f, err := r.Resolve(egCtx, entity, p)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
