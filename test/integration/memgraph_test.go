//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/driver"
)

func TestMemgraphBackend(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	ctx := context.Background()
	tables := loadTables(t)

	d, err := driver.NewMemgraphDriver(ctx, uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), tables.Prefixes, nil)
	require.NoError(t, err)
	defer d.Close(ctx)

	require.NoError(t, d.BuildIndices(ctx))

	// An empty or freshly imported graph must answer with rows or a clean empty result.
	_, err = d.ExecuteQuery(ctx, driver.QueryEntityLabel, driver.Params{"entity": "dbr:Marie_Curie"})
	if err != nil {
		assert.ErrorIs(t, err, common.ErrEmptyResult)
	}
}
