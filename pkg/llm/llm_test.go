package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docassist/pkg/llm"
	"docassist/pkg/llm/ollama"
	"docassist/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body["model"])
		assert.Equal(t, false, body["stream"])
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Aspirin."},"done":true}`))
	}))
	defer srv.Close()

	p := ollama.NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Generate(context.Background(), "which drug?")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin.", out)
}

func TestOpenAIChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var body struct {
			Model       string        `json:"model"`
			Messages    []llm.Message `json:"messages"`
			Temperature float64       `json:"temperature"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-x", body.Model)
		assert.Equal(t, 0.2, body.Temperature)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, llm.RoleSystem, body.Messages[0].Role)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Low hemoglobin.  "}}]}`))
	}))
	defer srv.Close()

	p := openai.NewProvider("secret", srv.URL+"/", "gpt-x")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "Summarize."},
		{Role: llm.RoleUser, Content: "Hemoglobin 11.2"},
	}, llm.WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, "Low hemoglobin.", out)
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`},
		{"error body", http.StatusOK, `{"error":{"message":"overloaded"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := openai.NewProvider("", srv.URL, "m").Generate(context.Background(), "hi")
			assert.Error(t, err)
		})
	}
}
