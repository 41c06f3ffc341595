package driver

import (
	"context"
	"fmt"

	"github.com/agenthands/kgquiz/internal/core/common"
)

// GraphDriver executes named, parameterised queries against a knowledge graph backend.
// Implementations return an error wrapping common.ErrQuery on transport or parse
// failure and common.ErrEmptyResult when a well-formed query matches no rows.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, name QueryName, params Params) (*Result, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// QueryName identifies one query template. Every backend implements every name.
type QueryName string

const (
	QueryRandomEntity       QueryName = "random_entity"
	QueryEntityLabel        QueryName = "entity_label"
	QueryEntityProperties   QueryName = "entity_properties"
	QueryPropertyInfo       QueryName = "property_info"
	QueryLiteralAnswer      QueryName = "literal_answer"
	QueryResourceAnswer     QueryName = "resource_answer"
	QueryRandomClassMember  QueryName = "random_class_member"
	QueryClassInstanceCount QueryName = "class_instance_count"
)

// Params binds template variables. Values are identifiers (string, compact or
// absolute) or integers (offsets, limits).
type Params map[string]any

// ValueType mirrors the term types of the SPARQL JSON results format.
type ValueType string

const (
	TypeURI     ValueType = "uri"
	TypeLiteral ValueType = "literal"
	TypeBNode   ValueType = "bnode"
)

// Value is one bound term.
type Value struct {
	Type     ValueType `json:"type"`
	Value    string    `json:"value"`
	Lang     string    `json:"xml:lang,omitempty"`
	Datatype string    `json:"datatype,omitempty"`
}

// Binding is one result row: variable name to bound value.
type Binding map[string]Value

// Result is the ordered row set of a query.
type Result struct {
	Vars []string
	Rows []Binding
}

// First returns the value of variable in the first row.
func (r *Result) First(variable string) (Value, bool) {
	if r == nil || len(r.Rows) == 0 {
		return Value{}, false
	}
	v, ok := r.Rows[0][variable]
	return v, ok
}

// Column returns the values of variable across all rows, skipping unbound cells.
func (r *Result) Column(variable string) []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		if v, ok := row[variable]; ok {
			out = append(out, v.Value)
		}
	}
	return out
}

// ErrNoHandler is returned by MockDriver for queries nobody registered.
var ErrNoHandler = fmt.Errorf("%w: no handler registered", common.ErrQuery)
