package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/ranking"
	"github.com/agenthands/kgquiz/internal/resources"
)

const DefaultTop = 50

// PropertySelector intersects an entity's structural properties with the ones
// the ranking collaborator considers relevant.
type PropertySelector struct {
	driver   driver.GraphDriver
	ranker   ranking.Ranker
	filter   ranking.Filter
	prefixes *resources.PrefixTable
	top      int
	rand     common.Rand
	logger   *zap.Logger
}

func NewPropertySelector(d driver.GraphDriver, ranker ranking.Ranker, filter ranking.Filter, prefixes *resources.PrefixTable, top int, r common.Rand, logger *zap.Logger) *PropertySelector {
	if top <= 0 {
		top = DefaultTop
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertySelector{
		driver:   d,
		ranker:   ranker,
		filter:   filter,
		prefixes: prefixes,
		top:      top,
		rand:     r,
		logger:   logger.Named("property_selector"),
	}
}

// Select returns up to count absolute property identifiers of entity, drawn
// without replacement from the intersection. Either lookup failing fails the
// selection.
func (s *PropertySelector) Select(ctx context.Context, entity model.Entity, count int) ([]string, error) {
	var structural, ranked []string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res, err := s.driver.ExecuteQuery(egCtx, driver.QueryEntityProperties, driver.Params{"resource": entity.ID})
		if err != nil {
			return fmt.Errorf("failed to list properties of %s: %w", entity.ID, err)
		}
		for _, p := range res.Column("p") {
			structural = append(structural, s.prefixes.Normalize(p))
		}
		return nil
	})
	eg.Go(func() error {
		ids, err := s.ranker.TopProperties(egCtx, entity.Label, s.top)
		if err != nil {
			return fmt.Errorf("failed to rank properties of %q: %w", entity.Label, err)
		}
		ranked = s.filter.Apply(ids)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	candidates := Intersect(ranked, structural)
	s.logger.Debug("property candidates",
		zap.String("entity", entity.ID),
		zap.Int("structural", len(structural)),
		zap.Int("ranked", len(ranked)),
		zap.Int("candidates", len(candidates)))
	if len(candidates) == 0 {
		return nil, common.Empty("no ranked property of %s is present in the graph", entity.ID)
	}
	return Sample(s.rand, candidates, count), nil
}

// Intersect keeps the elements of ranked that also occur in structural, in ranked
// order and without duplicates.
func Intersect(ranked, structural []string) []string {
	present := make(map[string]bool, len(structural))
	for _, id := range structural {
		present[id] = true
	}
	seen := make(map[string]bool, len(ranked))
	var out []string
	for _, id := range ranked {
		if present[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Sample draws min(count, len(items)) elements uniformly without replacement.
func Sample(r common.Rand, items []string, count int) []string {
	pool := append([]string(nil), items...)
	if count > len(pool) {
		count = len(pool)
	}
	for i := 0; i < count; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}
