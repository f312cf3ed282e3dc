package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateChatCompletionSendsJSONObjectRequest(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"summary\":\"ok\"}"}}],"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`))
	}))
	defer server.Close()

	client, err := NewClient("key-1", server.URL+"/v1/", time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:          "mistral-small-latest",
		Messages:       []Message{{Role: "user", Content: "hi"}},
		Temperature:    0.3,
		ResponseFormat: JSONObject,
	})
	require.NoError(t, err)
	require.Equal(t, `{"summary":"ok"}`, resp.Content())
	require.Equal(t, 17, resp.Usage.TotalTokens)

	require.Equal(t, "mistral-small-latest", got.Model)
	require.NotNil(t, got.ResponseFormat)
	require.Equal(t, "json_object", got.ResponseFormat.Type)
	require.InDelta(t, 0.3, got.Temperature, 0.0001)
}

func TestCreateChatCompletionNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	client, err := NewClient("bad", server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=401")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "", 0)
	require.Error(t, err)

	client, err := NewClient("k", "", 0)
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestContentWithoutChoices(t *testing.T) {
	require.Equal(t, "", ChatCompletionResponse{}.Content())
}
