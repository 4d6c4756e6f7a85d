package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bz888/nopickles/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, chatPath string, handler http.HandlerFunc) ClientConfig {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return ClientConfig{
		Scheme:   "http",
		Host:     strings.TrimPrefix(srv.URL, "http://"),
		ChatPath: chatPath,
	}
}

var testRequest = &CompletionRequest{
	Messages: []chat.Message{
		{Role: chat.RoleSystem, Content: "be nice"},
		{Role: chat.RoleUser, Content: "One latte please"},
	},
	Temperature: 0.7,
	MaxTokens:   500,
}

func TestOpenAIComplete(t *testing.T) {
	cfg := testConfig(t, "/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req OpenAIChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 0.7, req.Temperature)
		assert.Equal(t, 500, req.MaxTokens)
		assert.Equal(t, []OpenAIChatMessage{
			{Role: "system", Content: "be nice"},
			{Role: "user", Content: "One latte please"},
		}, req.Messages)

		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"One latte, $2.00."},"finish_reason":"stop"}],"usage":{"total_tokens":42}}`)
	})

	c := NewOpenAIClient(cfg, "sk-test", "gpt-3.5-turbo")
	assert.Equal(t, "gpt-3.5-turbo", c.Model())

	reply, err := c.Complete(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, "One latte, $2.00.", reply)
}

func TestOpenAICompleteErrorMessage(t *testing.T) {
	cfg := testConfig(t, "/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Incorrect API key provided"}}`)
	})

	_, err := NewOpenAIClient(cfg, "", "gpt-3.5-turbo").Complete(context.Background(), testRequest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	cfg := testConfig(t, "/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[]}`)
	})

	_, err := NewOpenAIClient(cfg, "sk-test", "gpt-3.5-turbo").Complete(context.Background(), testRequest)
	assert.Error(t, err)
}

func TestOllamaComplete(t *testing.T) {
	cfg := testConfig(t, "/api/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req OllamaChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3:latest", req.Model)
		assert.False(t, req.Stream)
		if assert.NotNil(t, req.Options) {
			assert.Equal(t, 0.7, req.Options.Temperature)
			assert.Equal(t, 500, req.Options.NumPredict)
		}
		assert.Len(t, req.Messages, 2)

		_, _ = io.WriteString(w, `{"model":"llama3:latest","message":{"role":"assistant","content":"Sure thing."},"done":true}`)
	})

	reply, err := NewOllamaClient(cfg, "llama3:latest").Complete(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, "Sure thing.", reply)
}

func TestOllamaCompleteError(t *testing.T) {
	cfg := testConfig(t, "/api/chat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model 'llama3:latest' not found"}`)
	})

	_, err := NewOllamaClient(cfg, "llama3:latest").Complete(context.Background(), testRequest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOllamaAvailable(t *testing.T) {
	cfg := testConfig(t, "/api/chat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "Ollama is running")
	})
	assert.True(t, NewOllamaClient(cfg, "llama3:latest").Available(context.Background()))

	down := OllamaConfig("127.0.0.1:1")
	assert.False(t, NewOllamaClient(down, "llama3:latest").Available(context.Background()))
}
