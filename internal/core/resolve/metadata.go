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
)

// MetadataResolver fetches a property's English label and declared range.
type MetadataResolver struct {
	driver driver.GraphDriver
	logger *zap.Logger
}

func NewMetadataResolver(d driver.GraphDriver, logger *zap.Logger) *MetadataResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetadataResolver{driver: d, logger: logger.Named("metadata")}
}

func (r *MetadataResolver) Resolve(ctx context.Context, propertyID string) (model.Property, error) {
	res, err := r.driver.ExecuteQuery(ctx, driver.QueryPropertyInfo, driver.Params{"property": propertyID})
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to resolve metadata of %s: %w", propertyID, err)
	}
	label, okLabel := res.First("label")
	rng, okRange := res.First("range")
	if !okLabel || !okRange || label.Value == "" || rng.Value == "" {
		return model.Property{}, common.Empty("label and range of %s", propertyID)
	}

	p := model.Property{ID: propertyID, Label: label.Value, Range: rng.Value}
	r.logger.Debug("property resolved",
		zap.String("property", p.ID),
		zap.String("label", p.Label),
		zap.String("range", p.Range))
	return p, nil
}

// ResolveAll resolves ids concurrently. Results are ordered by sorted identifier,
// independent of the order lookups complete in.
func (r *MetadataResolver) ResolveAll(ctx context.Context, ids []string) ([]model.Property, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	out := make([]model.Property, len(sorted))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range sorted {
		eg.Go(func() error {
			p, err := r.Resolve(egCtx, id)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
