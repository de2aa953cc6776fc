package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/apperr"
)

func TestClient_CreateMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req MessagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, maxTokens, req.MaxTokens)

		json.NewEncoder(w).Encode(MessagesResponse{
			Content:    []ContentBlock{{Type: "text", Text: "hello"}},
			StopReason: "end_turn",
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	resp, err := client.CreateMessage(context.Background(), MessagesRequest{
		MaxTokens: maxTokens,
		Messages:  []Message{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content[0].Text)
}

func TestClient_CreateMessageUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")
	_, err := client.CreateMessage(context.Background(), MessagesRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})

	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
}
