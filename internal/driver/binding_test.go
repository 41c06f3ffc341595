package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/resources"
)

func testPrefixes() *resources.PrefixTable {
	return resources.NewPrefixTable(map[string]string{
		"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
		"dbo":  "http://dbpedia.org/ontology/",
		"dbr":  "http://dbpedia.org/resource/",
	})
}

func TestFormatIdentifier(t *testing.T) {
	pt := testPrefixes()

	cases := []struct {
		in   string
		want string
	}{
		{"dbr:Marie_Curie", "dbr:Marie_Curie"},
		{"dbo:birthYear", "dbo:birthYear"},
		{"http://dbpedia.org/ontology/birthYear", "<http://dbpedia.org/ontology/birthYear>"},
		{"<http://dbpedia.org/resource/Boston>", "<http://dbpedia.org/resource/Boston>"},
		{"dbr:Boston_(band)", "<http://dbpedia.org/resource/Boston_(band)>"},
		{"dbr:St._Louis", "dbr:St._Louis"},
		{"dbr:Louis_XIV.", "<http://dbpedia.org/resource/Louis_XIV.>"},
	}
	for _, tc := range cases {
		got, err := FormatIdentifier(tc.in, pt)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFormatIdentifier_Errors(t *testing.T) {
	pt := testPrefixes()

	for _, in := range []string{"", "foo:Bar", "dbr:Has space", "plain"} {
		_, err := FormatIdentifier(in, pt)
		assert.ErrorIs(t, err, common.ErrQuery, in)
	}
}

func TestBindTemplate(t *testing.T) {
	pt := testPrefixes()

	q, err := bindTemplate(sparqlQueries[QueryRandomClassMember], Params{"class": "dbo:Person", "offset": 42}, pt)
	require.NoError(t, err)
	assert.Contains(t, q, "?r rdf:type dbo:Person .")
	assert.Contains(t, q, "OFFSET 42")
	assert.Contains(t, q, "?r rdfs:label ?e .", "unbound variables are left alone")

	q, err = bindTemplate(sparqlQueries[QueryResourceAnswer], Params{"resource": "dbr:Marie_Curie", "property": "http://dbpedia.org/ontology/birthPlace"}, pt)
	require.NoError(t, err)
	assert.Contains(t, q, "dbr:Marie_Curie <http://dbpedia.org/ontology/birthPlace> ?answerRes")
}

func TestBindTemplate_Errors(t *testing.T) {
	pt := testPrefixes()

	_, err := bindTemplate(sparqlQueries[QueryEntityLabel], Params{"nope": "dbr:X"}, pt)
	assert.ErrorIs(t, err, common.ErrQuery)

	_, err = bindTemplate(sparqlQueries[QueryRandomEntity], Params{"offset": 1.5}, pt)
	assert.ErrorIs(t, err, common.ErrQuery)
}

func TestResultHelpers(t *testing.T) {
	r := URIRows("p", "http://dbpedia.org/ontology/a", "http://dbpedia.org/ontology/b")

	v, ok := r.First("p")
	assert.True(t, ok)
	assert.Equal(t, TypeURI, v.Type)
	assert.Equal(t, []string{"http://dbpedia.org/ontology/a", "http://dbpedia.org/ontology/b"}, r.Column("p"))

	var empty *Result
	_, ok = empty.First("p")
	assert.False(t, ok)
	assert.Nil(t, empty.Column("p"))
}
