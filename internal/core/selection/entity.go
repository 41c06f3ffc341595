// Package selection picks the entity and the properties a question is built from.
package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/resources"
)

// EntitySelector samples a random entity with a statement, a wikiPageID and a label.
type EntitySelector struct {
	driver driver.GraphDriver
	tables *resources.Tables
	rand   common.Rand
	logger *zap.Logger
}

func NewEntitySelector(d driver.GraphDriver, tables *resources.Tables, r common.Rand, logger *zap.Logger) *EntitySelector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntitySelector{driver: d, tables: tables, rand: r, logger: logger.Named("entity_selector")}
}

// Select returns the compact identifier of a random entity. The offset is drawn
// from [0, total] where total is the class table population estimate, so a draw
// past the true population comes back as common.ErrEmptyResult.
func (s *EntitySelector) Select(ctx context.Context) (string, error) {
	total := s.tables.Classes.Total()
	if total < 0 {
		total = 0
	}
	offset := s.rand.IntN(total + 1)

	res, err := s.driver.ExecuteQuery(ctx, driver.QueryRandomEntity, driver.Params{"offset": offset})
	if err != nil {
		return "", fmt.Errorf("failed to select entity at offset %d: %w", offset, err)
	}
	v, ok := res.First("e")
	if !ok || v.Value == "" {
		return "", common.Empty("entity at offset %d", offset)
	}

	id := s.tables.Prefixes.Compact(v.Value)
	s.logger.Debug("entity selected", zap.Int("offset", offset), zap.String("entity", id))
	return id, nil
}
