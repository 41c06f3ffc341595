package app

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/driver"
)

func TestRefreshClassCounts(t *testing.T) {
	counts := map[string]string{
		"http://dbpedia.org/ontology/Person": "1243400",
		"http://dbpedia.org/ontology/City":   "9001",
	}
	md := &driver.MockDriver{Handlers: map[driver.QueryName]func(driver.Params) (*driver.Result, error){
		driver.QueryClassInstanceCount: func(p driver.Params) (*driver.Result, error) {
			return driver.Rows("count", counts[p["class"].(string)]), nil
		},
	}}

	got, err := RefreshClassCounts(context.Background(), md, []string{
		"http://dbpedia.org/ontology/Person",
		"http://dbpedia.org/ontology/City",
	}, 2, nil)
	require.NoError(t, err)

	want := map[string]int{
		"http://dbpedia.org/ontology/Person": 1243400,
		"http://dbpedia.org/ontology/City":   9001,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshClassCounts_Errors(t *testing.T) {
	md := &driver.MockDriver{Handlers: map[driver.QueryName]func(driver.Params) (*driver.Result, error){
		driver.QueryClassInstanceCount: func(p driver.Params) (*driver.Result, error) {
			return driver.Rows("count", "many"), nil
		},
	}}
	_, err := RefreshClassCounts(context.Background(), md, []string{"http://dbpedia.org/ontology/Person"}, 1, nil)
	assert.Error(t, err)

	_, err = RefreshClassCounts(context.Background(), &driver.MockDriver{}, []string{"http://dbpedia.org/ontology/Person"}, 0, nil)
	assert.ErrorIs(t, err, common.ErrQuery)
}
