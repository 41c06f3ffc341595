package server

import (
	"context"

	"github.com/agenthands/kgquiz/internal/core/model"
)

// MockGenerator returns Question (or Err) for every call.
type MockGenerator struct {
	Question model.Question
	Err      error
	Calls    int
}

func (m *MockGenerator) Generate(ctx context.Context) (model.Question, error) {
	m.Calls++
	if m.Err != nil {
		return model.Question{}, m.Err
	}
	return m.Question, nil
}
