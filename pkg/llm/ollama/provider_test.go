package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-search-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var payload ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"model": "llama3", "message": {"role": "assistant", "content": "hello"}, "done": true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3", time.Second)
	got, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, llm.WithMaxTokens(64))
	require.NoError(t, err)

	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, payload.Stream)
	assert.Equal(t, 64, payload.Options.NumPredict)
	assert.Equal(t, 0.2, payload.Options.Temperature)
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"error": "model not found"}`, llm.ErrTransport},
		{"bad json", http.StatusOK, `{`, llm.ErrMalformedResponse},
		{"missing message", http.StatusOK, `{"done": true}`, llm.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOllamaProvider(srv.URL, "llama3", time.Second)
			_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "q"}})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
