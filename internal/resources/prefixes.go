// Package resources holds the read-only lookup tables loaded once at startup:
// the prefix table, the class frequency table and the property blacklist.
package resources

import (
	"fmt"
	"sort"
	"strings"
)

// PrefixTable maps short prefixes to namespace IRIs and back.
type PrefixTable struct {
	byPrefix map[string]string
	// namespaces sorted longest first so Compact picks the most specific match.
	namespaces []string
	byNS       map[string]string
}

func NewPrefixTable(prefixes map[string]string) *PrefixTable {
	t := &PrefixTable{
		byPrefix: make(map[string]string, len(prefixes)),
		byNS:     make(map[string]string, len(prefixes)),
	}
	for p, ns := range prefixes {
		t.byPrefix[p] = ns
		// Two prefixes for one namespace: keep the lexically smaller so Compact is stable.
		if existing, ok := t.byNS[ns]; !ok || p < existing {
			t.byNS[ns] = p
		}
	}
	for ns := range t.byNS {
		t.namespaces = append(t.namespaces, ns)
	}
	sort.Slice(t.namespaces, func(i, j int) bool {
		if len(t.namespaces[i]) != len(t.namespaces[j]) {
			return len(t.namespaces[i]) > len(t.namespaces[j])
		}
		return t.namespaces[i] < t.namespaces[j]
	})
	return t
}

// Namespace returns the IRI registered for prefix.
func (t *PrefixTable) Namespace(prefix string) (string, bool) {
	ns, ok := t.byPrefix[prefix]
	return ns, ok
}

// Compact rewrites an absolute IRI (optionally wrapped in <>) to prefix:local form.
// IRIs outside every registered namespace are returned unwrapped and unchanged.
//
// The longest matching namespace wins, so when one namespace nests inside another
// (dbc: inside dbr:) Compact returns the nested form: Expand("dbr:Category:X")
// compacts to "dbc:X". Both name the same IRI, so Expand(Compact(iri)) == iri
// always holds, while Compact(Expand(id)) == id holds only for ids already in
// that canonical form.
func (t *PrefixTable) Compact(iri string) string {
	iri = strings.TrimSuffix(strings.TrimPrefix(iri, "<"), ">")
	for _, ns := range t.namespaces {
		if strings.HasPrefix(iri, ns) {
			return t.byNS[ns] + ":" + strings.TrimPrefix(iri, ns)
		}
	}
	return iri
}

// Expand rewrites prefix:local to an absolute IRI. Absolute IRIs pass through.
func (t *PrefixTable) Expand(id string) (string, error) {
	id = strings.TrimSuffix(strings.TrimPrefix(id, "<"), ">")
	if IsAbsolute(id) {
		return id, nil
	}
	prefix, local, ok := strings.Cut(id, ":")
	if !ok {
		return "", fmt.Errorf("identifier %q is neither absolute nor prefixed", id)
	}
	ns, ok := t.byPrefix[prefix]
	if !ok {
		return "", fmt.Errorf("unknown prefix %q in %q", prefix, id)
	}
	return ns + local, nil
}

// Normalize expands id when possible and otherwise returns it unchanged.
func (t *PrefixTable) Normalize(id string) string {
	if full, err := t.Expand(id); err == nil {
		return full
	}
	return id
}

// Header renders the table as SPARQL PREFIX declarations, sorted by prefix.
func (t *PrefixTable) Header() string {
	prefixes := make([]string, 0, len(t.byPrefix))
	for p := range t.byPrefix {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	var b strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p, t.byPrefix[p])
	}
	return b.String()
}

func (t *PrefixTable) Len() int { return len(t.byPrefix) }

// IsAbsolute reports whether id looks like an absolute http(s) or urn IRI.
func IsAbsolute(id string) bool {
	return strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") || strings.HasPrefix(id, "urn:")
}
