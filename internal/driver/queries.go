package driver

// SPARQL templates. ?variables listed in Params are substituted before execution;
// every other ?variable is a genuine query variable. The PREFIX header of the
// configured prefix table is prepended to each query.
var sparqlQueries = map[QueryName]string{
	QueryRandomEntity: `
		SELECT ?e WHERE {
			?e ?anyProperty ?anyValue .
			?e dbo:wikiPageID ?pageID .
			?e rdfs:label ?anyLabel .
		}
		OFFSET ?offset
		LIMIT 1`,

	QueryEntityLabel: `
		SELECT ?label WHERE {
			?entity rdfs:label ?label .
			FILTER(lang(?label) = "en")
		}
		LIMIT 1`,

	QueryEntityProperties: `
		SELECT DISTINCT ?p WHERE {
			?resource ?p ?anyValue .
			?p rdfs:label ?anyLabel .
		}`,

	QueryPropertyInfo: `
		SELECT ?range ?label WHERE {
			?property rdfs:label ?label .
			?property rdfs:range ?range .
			FILTER(lang(?label) = "en")
		}
		LIMIT 1`,

	QueryLiteralAnswer: `
		SELECT ?answer WHERE {
			?resource ?property ?answer .
			FILTER(isLiteral(?answer) && (lang(?answer) = "" || lang(?answer) = "en"))
		}
		LIMIT 1`,

	QueryResourceAnswer: `
		SELECT ?answer WHERE {
			?resource ?property ?answerRes .
			?answerRes rdfs:label ?answer .
			FILTER(lang(?answer) = "en")
		}
		LIMIT 1`,

	QueryRandomClassMember: `
		SELECT ?e WHERE {
			?r rdf:type ?class .
			?r rdfs:label ?e .
			FILTER(lang(?e) = "en")
		}
		OFFSET ?offset
		LIMIT 1`,

	QueryClassInstanceCount: `
		SELECT (COUNT(?r) AS ?count) WHERE {
			?r rdf:type ?class .
		}`,
}
