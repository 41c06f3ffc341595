package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, sparqlURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`
[sparql]
endpoint = %q

[resources]
blacklist = "../../resources/blacklist.json"
prefixes = "../../resources/prefixes.json"
classes = "../../resources/classes_sorted.json"

[logger]
level = "error"
`, sparqlURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRefreshClasses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("query"), "COUNT(?r)")
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(`{"head":{"vars":["count"]},"results":{"bindings":[
			{"count":{"type":"typed-literal","datatype":"http://www.w3.org/2001/XMLSchema#integer","value":"42"}}]}}`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "classes.json")
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"refresh-classes", "--config", writeConfig(t, srv.URL), "--out", out})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var counts map[string]int
	require.NoError(t, jsoniter.Unmarshal(data, &counts))
	assert.Equal(t, 42, counts["dbo:Person"])
	for class, n := range counts {
		assert.True(t, strings.HasPrefix(class, "dbo:"), class)
		assert.Equal(t, 42, n)
	}
	assert.Contains(t, stdout.String(), "wrote")
}

func TestGenerate_RejectsBadCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"generate", "--config", writeConfig(t, "http://127.0.0.1:1/sparql"), "--count", "0"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SPARQL_ENDPOINT", "http://override/sparql")

	// Missing default file falls back to the built-in defaults.
	t.Chdir(t.TempDir())
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://override/sparql", cfg.SPARQL.Endpoint)

	_, err = loadConfig("missing.toml")
	assert.Error(t, err)
}
