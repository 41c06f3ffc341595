package driver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/resources"
)

// prefixedName accepts the subset of SPARQL prefixed names that need no escaping.
var prefixedName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-]*:[A-Za-z0-9_]([A-Za-z0-9_\-.]*[A-Za-z0-9_\-])?$`)

// FormatIdentifier renders id as a SPARQL term: compact form when it is a valid
// prefixed name, otherwise the expanded IRI in angle brackets.
func FormatIdentifier(id string, prefixes *resources.PrefixTable) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty identifier", common.ErrQuery)
	}
	if !resources.IsAbsolute(strings.Trim(id, "<>")) && prefixedName.MatchString(id) {
		prefix, _, _ := strings.Cut(id, ":")
		if _, ok := prefixes.Namespace(prefix); ok {
			return id, nil
		}
	}
	iri, err := prefixes.Expand(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrQuery, err)
	}
	if strings.ContainsAny(iri, "<>\"{}|^`\\ \t\n") {
		return "", fmt.Errorf("%w: identifier %q cannot be written as an IRI", common.ErrQuery, id)
	}
	return "<" + iri + ">", nil
}

// bindTemplate substitutes every ?name in template with its formatted parameter.
func bindTemplate(template string, params Params, prefixes *resources.PrefixTable) (string, error) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	query := template
	for _, name := range names {
		var term string
		switch v := params[name].(type) {
		case string:
			formatted, err := FormatIdentifier(v, prefixes)
			if err != nil {
				return "", err
			}
			term = formatted
		case int:
			term = strconv.Itoa(v)
		case int64:
			term = strconv.FormatInt(v, 10)
		default:
			return "", fmt.Errorf("%w: unsupported parameter type %T for ?%s", common.ErrQuery, v, name)
		}
		re := regexp.MustCompile(`\?` + regexp.QuoteMeta(name) + `\b`)
		if !re.MatchString(query) {
			return "", fmt.Errorf("%w: template has no variable ?%s", common.ErrQuery, name)
		}
		query = re.ReplaceAllLiteralString(query, term)
	}
	return query, nil
}
