package driver

import (
	"context"
	"sync"
)

// MockDriver answers queries from per-name handlers and records every call.
// It is safe for the concurrent fan-out lookups of the pipeline.
type MockDriver struct {
	Handlers map[QueryName]func(params Params) (*Result, error)

	mu    sync.Mutex
	Calls []MockCall
}

type MockCall struct {
	Name   QueryName
	Params Params
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, name QueryName, params Params) (*Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Name: name, Params: params})
	h := m.Handlers[name]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrNoHandler
	}
	return h(params)
}

func (m *MockDriver) BuildIndices(ctx context.Context) error { return nil }

func (m *MockDriver) Close(ctx context.Context) error { return nil }

// CallsTo returns the recorded calls of one query name.
func (m *MockDriver) CallsTo(name QueryName) []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockCall
	for _, c := range m.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Rows builds a Result with one literal column.
func Rows(variable string, values ...string) *Result {
	r := &Result{Vars: []string{variable}}
	for _, v := range values {
		r.Rows = append(r.Rows, Binding{variable: {Type: TypeLiteral, Value: v}})
	}
	return r
}

// URIRows builds a Result with one IRI column.
func URIRows(variable string, values ...string) *Result {
	r := &Result{Vars: []string{variable}}
	for _, v := range values {
		r.Rows = append(r.Rows, Binding{variable: {Type: TypeURI, Value: v}})
	}
	return r
}
