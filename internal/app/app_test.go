package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/config"
	"github.com/agenthands/kgquiz/internal/driver"
	"github.com/agenthands/kgquiz/internal/llm"
	"github.com/agenthands/kgquiz/internal/ranking"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Resources = config.ResourcesConfig{
		Blacklist: "../../resources/blacklist.json",
		Prefixes:  "../../resources/prefixes.json",
		Classes:   "../../resources/classes_sorted.json",
	}
	cfg.SPARQL.Endpoint = "http://127.0.0.1:1/sparql"
	cfg.Ranking.Endpoint = "http://127.0.0.1:1/rank"
	return cfg
}

func TestBuild_SPARQLAndHTTPRanker(t *testing.T) {
	a, err := Build(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.IsType(t, &driver.SPARQLDriver{}, a.Driver)
	assert.IsType(t, &ranking.HTTPRanker{}, a.Ranker)
	assert.NotNil(t, a.Generator)
	assert.Greater(t, a.Tables.Classes.Total(), 0)
}

func TestBuild_LLMRanker(t *testing.T) {
	cfg := testConfig()
	cfg.Ranking.Backend = "llm"
	cfg.LLM = config.LLMConfig{Provider: "ollama", Model: "gpt-oss", BaseURL: "http://127.0.0.1:1"}

	a, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close(context.Background())
	assert.IsType(t, &llm.PropertyRanker{}, a.Ranker)
}

func TestBuild_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.Graph.Backend = "triplestore"
	_, err := Build(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Resources.Classes = "does-not-exist.json"
	_, err = Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestGeneratorOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.MaxAttempts = 7
	cfg.Ranking.Top = 20

	opts := GeneratorOptions(cfg)
	assert.Equal(t, 7, opts.MaxAttempts)
	assert.Equal(t, 20, opts.Top)
	assert.Equal(t, 3, opts.Distractors)
	assert.Equal(t, cfg.Ranking.ExcludeNamespaces, opts.ExcludeNamespaces)
}
