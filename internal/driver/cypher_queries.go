package driver

// Cypher templates over the statement graph a DBpedia dump is imported into:
//
//	(:Resource {uri})-[:STATEMENT {predicate}]->(:Resource {uri})
//	(:Resource {uri})-[:STATEMENT {predicate}]->(:Literal {value, lang, datatype})
//
// $rdfsLabel, $rdfsRange, $rdfType and $wikiPageID are supplied by the driver.
var cypherQueries = map[QueryName]string{
	QueryRandomEntity: `
		MATCH (e:Resource)-[:STATEMENT {predicate: $wikiPageID}]->()
		WHERE exists((e)-[:STATEMENT {predicate: $rdfsLabel}]->(:Literal))
		RETURN e.uri AS e
		SKIP $offset LIMIT 1`,

	QueryEntityLabel: `
		MATCH (e:Resource {uri: $entity})-[:STATEMENT {predicate: $rdfsLabel}]->(l:Literal {lang: "en"})
		RETURN l.value AS label, l.lang AS label_lang
		LIMIT 1`,

	QueryEntityProperties: `
		MATCH (r:Resource {uri: $resource})-[s:STATEMENT]->()
		WITH DISTINCT s.predicate AS p
		MATCH (:Resource {uri: p})-[:STATEMENT {predicate: $rdfsLabel}]->(:Literal)
		RETURN DISTINCT p`,

	QueryPropertyInfo: `
		MATCH (p:Resource {uri: $property})-[:STATEMENT {predicate: $rdfsLabel}]->(l:Literal {lang: "en"})
		MATCH (p)-[:STATEMENT {predicate: $rdfsRange}]->(rg:Resource)
		RETURN rg.uri AS range, l.value AS label, l.lang AS label_lang
		LIMIT 1`,

	QueryLiteralAnswer: `
		MATCH (r:Resource {uri: $resource})-[:STATEMENT {predicate: $property}]->(a:Literal)
		WHERE a.lang IS NULL OR a.lang = "" OR a.lang = "en"
		RETURN a.value AS answer, a.lang AS answer_lang, a.datatype AS answer_datatype
		LIMIT 1`,

	QueryResourceAnswer: `
		MATCH (r:Resource {uri: $resource})-[:STATEMENT {predicate: $property}]->(x:Resource)
		MATCH (x)-[:STATEMENT {predicate: $rdfsLabel}]->(a:Literal {lang: "en"})
		RETURN a.value AS answer, a.lang AS answer_lang
		LIMIT 1`,

	QueryRandomClassMember: `
		MATCH (r:Resource)-[:STATEMENT {predicate: $rdfType}]->(:Resource {uri: $class})
		MATCH (r)-[:STATEMENT {predicate: $rdfsLabel}]->(e:Literal {lang: "en"})
		RETURN e.value AS e, e.lang AS e_lang
		SKIP $offset LIMIT 1`,

	QueryClassInstanceCount: `
		MATCH (r:Resource)-[:STATEMENT {predicate: $rdfType}]->(:Resource {uri: $class})
		RETURN count(r) AS count`,
}

// cypherURIColumns lists the columns holding resource IRIs rather than literals.
var cypherURIColumns = map[QueryName]map[string]bool{
	QueryRandomEntity:     {"e": true},
	QueryEntityProperties: {"p": true},
	QueryPropertyInfo:     {"range": true},
}
