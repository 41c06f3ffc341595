package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/vocab"
)

func TestRecordToBinding(t *testing.T) {
	row := recordToBinding(
		[]string{"range", "label", "label_lang"},
		[]any{"http://www.w3.org/2001/XMLSchema#gYear", "birth year", "en"},
		cypherURIColumns[QueryPropertyInfo],
	)

	assert.Equal(t, Value{Type: TypeURI, Value: "http://www.w3.org/2001/XMLSchema#gYear"}, row["range"])
	assert.Equal(t, Value{Type: TypeLiteral, Value: "birth year", Lang: "en"}, row["label"])
	_, ok := row["label_lang"]
	assert.False(t, ok)
}

func TestRecordToBinding_NullsAndNumbers(t *testing.T) {
	row := recordToBinding([]string{"answer", "answer_lang", "count"}, []any{nil, nil, int64(12)}, nil)

	_, ok := row["answer"]
	assert.False(t, ok)
	assert.Equal(t, "12", row["count"].Value)
}

func TestMemgraphDriver_CypherParams(t *testing.T) {
	d := &MemgraphDriver{prefixes: testPrefixes()}

	p, err := d.cypherParams(Params{"class": "dbo:Person", "offset": 7})
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org/ontology/Person", p["class"])
	assert.Equal(t, int64(7), p["offset"])
	assert.Equal(t, vocab.RDFType, p["rdfType"])

	_, err = d.cypherParams(Params{"class": "zzz:Person"})
	assert.ErrorIs(t, err, common.ErrQuery)
}

func TestCypherQueries_CoverSPARQL(t *testing.T) {
	for name := range sparqlQueries {
		_, ok := cypherQueries[name]
		assert.True(t, ok, "missing cypher template for %s", name)
	}
}
