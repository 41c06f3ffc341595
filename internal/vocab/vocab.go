// Package vocab names the RDF terms the question pipeline depends on.
package vocab

import "strings"

const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	DBO  = "http://dbpedia.org/ontology/"

	// DBPediaDatatypes holds unit datatypes such as dbt:squareKilometre.
	DBPediaDatatypes = "http://dbpedia.org/datatype/"
	// DBPediaProperty is the raw infobox namespace; its terms carry no range or label.
	DBPediaProperty = "http://dbpedia.org/property/"

	RDFType       = RDF + "type"
	RDFLangString = RDF + "langString"
	RDFSLabel     = RDFS + "label"
	RDFSRange     = RDFS + "range"
	XSDGYear      = XSD + "gYear"
	WikiPageID    = DBO + "wikiPageID"

	// English is the only language tag answers and labels are accepted in.
	English = "en"
)

// DefaultDatatypeNamespaces are the namespaces whose terms are literal datatypes, not classes.
var DefaultDatatypeNamespaces = []string{XSD, DBPediaDatatypes}

// IsDatatype reports whether rangeIRI names a literal datatype rather than a class.
func IsDatatype(rangeIRI string, namespaces []string) bool {
	if rangeIRI == RDFLangString || strings.HasPrefix(rangeIRI, RDFS+"Literal") {
		return true
	}
	for _, ns := range namespaces {
		if strings.HasPrefix(rangeIRI, ns) {
			return true
		}
	}
	return false
}
