package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamChatSendsSystemPrompt(t *testing.T) {
	var got chatCompletionRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[]}\n\ndata: [DONE]\n\n")
	}))
	defer server.Close()

	client := &AIGatewayClient{URL: server.URL, APIKey: "key-1", Model: "test-model"}
	body, err := client.StreamChat(context.Background(), "educational", []ChatTurn{{Role: "user", Content: "Hi"}})
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data: [DONE]")

	assert.Equal(t, "Bearer key-1", auth)
	assert.Equal(t, "test-model", got.Model)
	assert.True(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, educationalAssistantPrompt, got.Messages[0].Content)
	assert.Equal(t, ChatTurn{Role: "user", Content: "Hi"}, got.Messages[1])
}

func TestStreamChatUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, "slow down")
	}))
	defer server.Close()

	client := &AIGatewayClient{URL: server.URL, APIKey: "key-1"}
	_, err := client.StreamChat(context.Background(), "", nil)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, "slow down", upstream.Body)
}

func TestSystemPrompt(t *testing.T) {
	assert.Equal(t, travelAssistantPrompt, SystemPrompt(""))
	assert.Equal(t, travelAssistantPrompt, SystemPrompt("general"))
	assert.Equal(t, educationalAssistantPrompt, SystemPrompt("educational"))
}
