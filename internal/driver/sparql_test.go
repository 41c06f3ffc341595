package driver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/core/common"
)

func newTestSPARQL(t *testing.T, handler http.HandlerFunc) *SPARQLDriver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d, err := NewSPARQLDriver(SPARQLOptions{Endpoint: srv.URL}, testPrefixes())
	require.NoError(t, err)
	return d
}

func TestSPARQLDriver_ExecuteQuery(t *testing.T) {
	var gotQuery string
	d := newTestSPARQL(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, sparqlResultsJSON, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", sparqlResultsJSON)
		_, _ = w.Write([]byte(`{
			"head": {"vars": ["label"]},
			"results": {"bindings": [
				{"label": {"type": "literal", "xml:lang": "en", "value": "Marie Curie"}}
			]}
		}`))
	})

	res, err := d.ExecuteQuery(context.Background(), QueryEntityLabel, Params{"entity": "dbr:Marie_Curie"})
	require.NoError(t, err)

	v, ok := res.First("label")
	require.True(t, ok)
	assert.Equal(t, "Marie Curie", v.Value)
	assert.Equal(t, "en", v.Lang)
	assert.Equal(t, []string{"label"}, res.Vars)

	assert.True(t, strings.HasPrefix(gotQuery, "PREFIX dbo: <http://dbpedia.org/ontology/>"))
	assert.Contains(t, gotQuery, "dbr:Marie_Curie rdfs:label ?label")
}

func TestSPARQLDriver_TypedLiteral(t *testing.T) {
	d := newTestSPARQL(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"head": {"vars": ["answer"]}, "results": {"bindings": [
			{"answer": {"type": "typed-literal", "datatype": "http://www.w3.org/2001/XMLSchema#gYear", "value": "1867"}}
		]}}`))
	})

	res, err := d.ExecuteQuery(context.Background(), QueryLiteralAnswer, Params{"resource": "dbr:Marie_Curie", "property": "dbo:birthYear"})
	require.NoError(t, err)
	v, _ := res.First("answer")
	assert.Equal(t, TypeLiteral, v.Type)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#gYear", v.Datatype)
}

func TestSPARQLDriver_EmptyResult(t *testing.T) {
	d := newTestSPARQL(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"head": {"vars": ["e"]}, "results": {"bindings": []}}`))
	})

	_, err := d.ExecuteQuery(context.Background(), QueryRandomEntity, Params{"offset": 10})
	assert.ErrorIs(t, err, common.ErrEmptyResult)
	assert.NotErrorIs(t, err, common.ErrQuery)
}

func TestSPARQLDriver_QueryErrors(t *testing.T) {
	var calls atomic.Int32
	d := newTestSPARQL(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "Virtuoso 37000 Error SP030", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := d.ExecuteQuery(context.Background(), QueryEntityLabel, Params{"entity": "dbr:X"})
	assert.ErrorIs(t, err, common.ErrQuery)
	assert.Contains(t, err.Error(), "400")

	_, err = d.ExecuteQuery(context.Background(), QueryEntityLabel, Params{"entity": "dbr:X"})
	assert.ErrorIs(t, err, common.ErrQuery)

	_, err = d.ExecuteQuery(context.Background(), QueryName("bogus"), nil)
	assert.ErrorIs(t, err, common.ErrQuery)
}

func TestSPARQLDriver_DefaultGraph(t *testing.T) {
	var graph string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		graph = r.URL.Query().Get("default-graph-uri")
		_, _ = w.Write([]byte(`{"head": {"vars": ["count"]}, "results": {"bindings": [{"count": {"type": "literal", "value": "12"}}]}}`))
	}))
	defer srv.Close()

	d, err := NewSPARQLDriver(SPARQLOptions{Endpoint: srv.URL, DefaultGraph: "http://dbpedia.org", RequestsPerSecond: 100}, testPrefixes())
	require.NoError(t, err)

	_, err = d.ExecuteQuery(context.Background(), QueryClassInstanceCount, Params{"class": "dbo:Person"})
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org", graph)
	assert.NoError(t, d.BuildIndices(context.Background()))
	assert.NoError(t, d.Close(context.Background()))
}

func TestNewSPARQLDriver_RequiresEndpoint(t *testing.T) {
	_, err := NewSPARQLDriver(SPARQLOptions{}, testPrefixes())
	assert.Error(t, err)
}
