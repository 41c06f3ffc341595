// Package resolve fetches labels, property metadata and correct answers.
package resolve

import (
	"context"
	"fmt"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/driver"
)

type LabelResolver struct {
	driver driver.GraphDriver
}

func NewLabelResolver(d driver.GraphDriver) *LabelResolver {
	return &LabelResolver{driver: d}
}

// Resolve returns the English label of entityID.
func (r *LabelResolver) Resolve(ctx context.Context, entityID string) (string, error) {
	res, err := r.driver.ExecuteQuery(ctx, driver.QueryEntityLabel, driver.Params{"entity": entityID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve label of %s: %w", entityID, err)
	}
	v, ok := res.First("label")
	if !ok || v.Value == "" {
		return "", common.Empty("English label of %s", entityID)
	}
	return v.Value, nil
}
