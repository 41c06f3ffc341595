package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefixes = map[string]string{
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":  "http://www.w3.org/2001/XMLSchema#",
	"dbo":  "http://dbpedia.org/ontology/",
	"dbr":  "http://dbpedia.org/resource/",
	"dbp":  "http://dbpedia.org/property/",
	"dbc":  "http://dbpedia.org/resource/Category:",
}

func TestPrefixTable_RoundTrip(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)

	for prefix := range testPrefixes {
		compact := prefix + ":Some_Local_Name"
		full, err := pt.Expand(compact)
		require.NoError(t, err)
		assert.Equal(t, testPrefixes[prefix]+"Some_Local_Name", full)
		assert.Equal(t, compact, pt.Compact(full), "prefix %s", prefix)
	}
}

// dbc: nests inside dbr:, so a dbr: id whose local name starts with Category:
// comes back in its canonical dbc: form naming the same IRI.
func TestPrefixTable_RoundTripNestedNamespace(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)

	full, err := pt.Expand("dbr:Category:Physicists")
	require.NoError(t, err)
	compact := pt.Compact(full)
	assert.Equal(t, "dbc:Physicists", compact)

	again, err := pt.Expand(compact)
	require.NoError(t, err)
	assert.Equal(t, full, again)
	assert.Equal(t, compact, pt.Compact(again))
}

func TestPrefixTable_CompactLongestNamespace(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)

	assert.Equal(t, "dbc:Physicists", pt.Compact("http://dbpedia.org/resource/Category:Physicists"))
	assert.Equal(t, "dbr:Marie_Curie", pt.Compact("<http://dbpedia.org/resource/Marie_Curie>"))
	assert.Equal(t, "http://example.org/x", pt.Compact("http://example.org/x"))
}

func TestPrefixTable_ExpandErrors(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)

	_, err := pt.Expand("nope:Thing")
	assert.Error(t, err)
	_, err = pt.Expand("bare")
	assert.Error(t, err)

	full, err := pt.Expand("<http://dbpedia.org/resource/Boston>")
	require.NoError(t, err)
	assert.Equal(t, "http://dbpedia.org/resource/Boston", full)
	assert.Equal(t, "bare", pt.Normalize("bare"))
}

func TestPrefixTable_Header(t *testing.T) {
	pt := NewPrefixTable(map[string]string{"dbo": "http://dbpedia.org/ontology/", "rdfs": "http://www.w3.org/2000/01/rdf-schema#"})

	assert.Equal(t, "PREFIX dbo: <http://dbpedia.org/ontology/>\nPREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>\n", pt.Header())
}

func TestClassFrequencyTable(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)
	ct := NewClassFrequencyTable(map[string]int{"dbo:Person": 10, "http://dbpedia.org/ontology/City": 5}, pt)

	assert.Equal(t, 15, ct.Total())
	n, ok := ct.Count("http://dbpedia.org/ontology/Person")
	assert.True(t, ok)
	assert.Equal(t, 10, n)
	_, ok = ct.Count("dbo:Person")
	assert.False(t, ok, "lookups expect normalised identifiers")
	assert.Len(t, ct.Classes(), 2)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	paths := Paths{
		Prefixes:  write("prefixes.json", `{"dbo": "http://dbpedia.org/ontology/", "rdf": "http://www.w3.org/1999/02/22-rdf-syntax-ns#"}`),
		Blacklist: write("blacklist.json", `["dbo:wikiPageID", "rdf:type"]`),
		Classes:   write("classes.json", `{"dbo:Person": 3, "dbo:Place": 4}`),
	}

	tables, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, 2, tables.Prefixes.Len())
	assert.Equal(t, 7, tables.Classes.Total())
	assert.True(t, tables.Blacklist.Contains("http://dbpedia.org/ontology/wikiPageID"))
	assert.True(t, tables.Blacklist.Contains("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))
	assert.False(t, tables.Blacklist.Contains("http://dbpedia.org/ontology/birthDate"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	prefixes := filepath.Join(dir, "prefixes.json")
	require.NoError(t, os.WriteFile(prefixes, []byte(`{"dbo": "http://dbpedia.org/ontology/"}`), 0o644))
	blacklist := filepath.Join(dir, "blacklist.json")
	require.NoError(t, os.WriteFile(blacklist, []byte(`[]`), 0o644))
	empty := filepath.Join(dir, "classes.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{}`), 0o644))

	_, err := Load(Paths{Prefixes: filepath.Join(dir, "missing.json"), Blacklist: blacklist, Classes: empty})
	assert.Error(t, err)

	_, err = Load(Paths{Prefixes: prefixes, Blacklist: blacklist, Classes: empty})
	assert.ErrorContains(t, err, "empty")
}

func TestWriteClasses(t *testing.T) {
	pt := NewPrefixTable(testPrefixes)
	path := filepath.Join(t.TempDir(), "classes.json")

	require.NoError(t, WriteClasses(path, map[string]int{"http://dbpedia.org/ontology/Person": 42}, pt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dbo:Person": 42`)
}

func TestLoad_ShippedResources(t *testing.T) {
	tables, err := Load(Paths{
		Prefixes:  "../../resources/prefixes.json",
		Blacklist: "../../resources/blacklist.json",
		Classes:   "../../resources/classes_sorted.json",
	})
	require.NoError(t, err)
	assert.Greater(t, tables.Classes.Total(), 0)
	_, ok := tables.Classes.Count("http://dbpedia.org/ontology/Person")
	assert.True(t, ok)
}
