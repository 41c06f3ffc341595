package driver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/resources"
	"github.com/agenthands/kgquiz/internal/vocab"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const sparqlResultsJSON = "application/sparql-results+json"

// requiredPrefixes are declared even when the prefix table omits them, since the
// templates use them directly.
var requiredPrefixes = [][2]string{
	{"dbo", vocab.DBO},
	{"rdf", vocab.RDF},
	{"rdfs", vocab.RDFS},
}

type SPARQLOptions struct {
	Endpoint          string
	DefaultGraph      string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *zap.Logger
}

// SPARQLDriver runs the query templates against a SPARQL 1.1 protocol endpoint.
type SPARQLDriver struct {
	endpoint     string
	defaultGraph string
	client       *http.Client
	prefixes     *resources.PrefixTable
	header       string
	limiter      *rate.Limiter
	logger       *zap.Logger
}

func NewSPARQLDriver(opts SPARQLOptions, prefixes *resources.PrefixTable) (*SPARQLDriver, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("sparql endpoint is required")
	}
	if _, err := url.Parse(opts.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid sparql endpoint '%s': %w", opts.Endpoint, err)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var header strings.Builder
	for _, p := range requiredPrefixes {
		if _, ok := prefixes.Namespace(p[0]); !ok {
			fmt.Fprintf(&header, "PREFIX %s: <%s>\n", p[0], p[1])
		}
	}
	header.WriteString(prefixes.Header())

	return &SPARQLDriver{
		endpoint:     opts.Endpoint,
		defaultGraph: opts.DefaultGraph,
		client:       client,
		prefixes:     prefixes,
		header:       header.String(),
		limiter:      rate.NewLimiter(limit, 1),
		logger:       logger.Named("sparql"),
	}, nil
}

type sparqlResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

func (d *SPARQLDriver) ExecuteQuery(ctx context.Context, name QueryName, params Params) (*Result, error) {
	template, ok := sparqlQueries[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown query %q", common.ErrQuery, name)
	}
	body, err := bindTemplate(template, params, d.prefixes)
	if err != nil {
		return nil, err
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limiter: %w", common.ErrQuery, err)
	}

	start := time.Now()
	result, err := d.do(ctx, d.header+body)
	d.logger.Debug("query executed",
		zap.String("query", string(name)),
		zap.Duration("took", time.Since(start)),
		zap.Int("rows", len(result.Rows)),
		zap.Error(err))
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, common.Empty("query %s", name)
	}
	return result, nil
}

func (d *SPARQLDriver) do(ctx context.Context, query string) (*Result, error) {
	values := url.Values{}
	values.Set("query", query)
	values.Set("format", sparqlResultsJSON)
	if d.defaultGraph != "" {
		values.Set("default-graph-uri", d.defaultGraph)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: failed to build request: %v", common.ErrQuery, err)
	}
	req.Header.Set("Accept", sparqlResultsJSON)

	resp, err := d.client.Do(req)
	if err != nil {
		return &Result{}, fmt.Errorf("%w: %w", common.ErrQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Result{}, fmt.Errorf("%w: endpoint returned status %d: %s", common.ErrQuery, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return &Result{}, fmt.Errorf("%w: failed to decode results: %v", common.ErrQuery, err)
	}

	for _, row := range decoded.Results.Bindings {
		for k, v := range row {
			// SPARQL 1.0 era endpoints still emit typed-literal.
			if v.Type == "typed-literal" {
				v.Type = TypeLiteral
				row[k] = v
			}
		}
	}
	return &Result{Vars: decoded.Head.Vars, Rows: decoded.Results.Bindings}, nil
}

// BuildIndices is a no-op: a remote SPARQL endpoint manages its own indexes.
func (d *SPARQLDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (d *SPARQLDriver) Close(ctx context.Context) error {
	d.client.CloseIdleConnections()
	return nil
}
