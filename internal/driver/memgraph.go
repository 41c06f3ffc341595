package driver

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/resources"
	"github.com/agenthands/kgquiz/internal/vocab"
)

// MemgraphDriver serves the query templates from a Memgraph (or Neo4j) instance
// holding an imported RDF statement graph.
type MemgraphDriver struct {
	Driver   neo4j.DriverWithContext
	prefixes *resources.PrefixTable
	logger   *zap.Logger
}

func NewMemgraphDriver(ctx context.Context, uri, username, password string, prefixes *resources.PrefixTable, logger *zap.Logger) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create memgraph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to memgraph at %s: %w", uri, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("memgraph")
	logger.Info("connected to memgraph", zap.String("uri", uri))
	return &MemgraphDriver{Driver: driver, prefixes: prefixes, logger: logger}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, name QueryName, params Params) (*Result, error) {
	query, ok := cypherQueries[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown query %q", common.ErrQuery, name)
	}
	cypherParams, err := d.cypherParams(params)
	if err != nil {
		return nil, err
	}

	res, err := neo4j.ExecuteQuery(ctx, d.Driver, query, cypherParams, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute %s: %w", common.ErrQuery, name, err)
	}

	result := &Result{Vars: res.Keys}
	for _, rec := range res.Records {
		result.Rows = append(result.Rows, recordToBinding(rec.Keys, rec.Values, cypherURIColumns[name]))
	}
	d.logger.Debug("query executed", zap.String("query", string(name)), zap.Int("rows", len(result.Rows)))

	if len(result.Rows) == 0 {
		return nil, common.Empty("query %s", name)
	}
	return result, nil
}

// cypherParams expands identifiers to absolute IRIs, since the graph stores full URIs.
func (d *MemgraphDriver) cypherParams(params Params) (map[string]any, error) {
	out := map[string]any{
		"rdfsLabel":  vocab.RDFSLabel,
		"rdfsRange":  vocab.RDFSRange,
		"rdfType":    vocab.RDFType,
		"wikiPageID": vocab.WikiPageID,
	}
	for name, v := range params {
		switch val := v.(type) {
		case string:
			iri, err := d.prefixes.Expand(val)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrQuery, err)
			}
			out[name] = iri
		case int:
			out[name] = int64(val)
		case int64:
			out[name] = val
		default:
			return nil, fmt.Errorf("%w: unsupported parameter type %T for $%s", common.ErrQuery, v, name)
		}
	}
	return out, nil
}

// recordToBinding folds "<col>_lang" and "<col>_datatype" companion columns into
// the value of <col>. Null cells stay unbound.
func recordToBinding(keys []string, values []any, uriColumns map[string]bool) Binding {
	cells := make(map[string]any, len(keys))
	for i, k := range keys {
		if i < len(values) {
			cells[k] = values[i]
		}
	}

	row := Binding{}
	for _, k := range keys {
		if strings.HasSuffix(k, "_lang") || strings.HasSuffix(k, "_datatype") {
			continue
		}
		raw := cells[k]
		if raw == nil {
			continue
		}
		v := Value{Type: TypeLiteral, Value: cellString(raw)}
		if uriColumns[k] {
			v.Type = TypeURI
		}
		if lang, ok := cells[k+"_lang"].(string); ok {
			v.Lang = lang
		}
		if dt, ok := cells[k+"_datatype"].(string); ok {
			v.Datatype = dt
		}
		row[k] = v
	}
	return row
}

func cellString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Resource(uri);",
		"CREATE INDEX ON :Literal(lang);",
	}

	for _, q := range queries {
		if _, err := neo4j.ExecuteQuery(ctx, d.Driver, q, nil, neo4j.EagerResultTransformer); err != nil {
			// An existing index is reported as an error; keep going.
			d.logger.Warn("failed to create index", zap.String("query", q), zap.Error(err))
		}
	}
	return nil
}
