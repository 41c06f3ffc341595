package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgquiz/internal/config"
	"github.com/agenthands/kgquiz/internal/core/common"
)

func TestPropertyRanker(t *testing.T) {
	mock := &MockLLM{Response: "```json\n" + `{"properties": ["http://dbpedia.org/ontology/birthYear", " ", "http://dbpedia.org/ontology/spouse", "http://dbpedia.org/ontology/almaMater"]}` + "\n```"}
	r := NewPropertyRanker(mock, nil)

	ids, err := r.TopProperties(context.Background(), "Marie Curie", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://dbpedia.org/ontology/birthYear", "http://dbpedia.org/ontology/spouse"}, ids)
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Entity: Marie Curie")
	assert.Contains(t, mock.Prompts[0], "up to 2 DBpedia")
}

func TestPropertyRanker_Failures(t *testing.T) {
	_, err := NewPropertyRanker(&MockLLM{Err: errors.New("quota")}, nil).TopProperties(context.Background(), "X", 5)
	assert.ErrorIs(t, err, common.ErrRankingService)

	_, err = NewPropertyRanker(&MockLLM{Response: "I cannot help with that."}, nil).TopProperties(context.Background(), "X", 5)
	assert.ErrorIs(t, err, common.ErrRankingService)
}

func TestOpenAIClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"json_object"`)
		assert.Contains(t, string(body), "Marie Curie")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "test",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"properties\": []}"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("key", "test", srv.URL+"/v1")
	out, err := c.Generate(context.Background(), "about Marie Curie")
	require.NoError(t, err)
	assert.Equal(t, `{"properties": []}`, out)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{Provider: "OpenAI", Model: "gpt-4o-mini", APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(context.Background(), config.LLMConfig{Provider: "ollama", Model: "gpt-oss", BaseURL: "http://localhost:11434/"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(context.Background(), config.LLMConfig{Provider: "claude", Model: "claude-3-5-haiku-latest", APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	_, err = NewClient(context.Background(), config.LLMConfig{Provider: "watson"}, nil)
	assert.Error(t, err)
}
