package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/kgquiz/internal/driver"
)

// RefreshClassCounts recounts the instances of every class, at most concurrency
// queries at a time. Classes that no longer have instances are reported with 0.
func RefreshClassCounts(ctx context.Context, d driver.GraphDriver, classes []string, concurrency int, logger *zap.Logger) (map[string]int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	sorted := append([]string(nil), classes...)
	sort.Strings(sorted)
	counts := make([]int, len(sorted))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, class := range sorted {
		eg.Go(func() error {
			n, err := countInstances(egCtx, d, class)
			if err != nil {
				return err
			}
			counts[i] = n
			logger.Debug("class counted", zap.String("class", class), zap.Int("count", n))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(sorted))
	for i, class := range sorted {
		out[class] = counts[i]
	}
	return out, nil
}

func countInstances(ctx context.Context, d driver.GraphDriver, class string) (int, error) {
	res, err := d.ExecuteQuery(ctx, driver.QueryClassInstanceCount, driver.Params{"class": class})
	if err != nil {
		return 0, fmt.Errorf("failed to count instances of %s: %w", class, err)
	}
	v, ok := res.First("count")
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v.Value)
	if err != nil {
		return 0, fmt.Errorf("invalid instance count %q for %s: %w", v.Value, class, err)
	}
	return n, nil
}
