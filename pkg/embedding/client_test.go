package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embedServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("jina-key", server.URL)
}

func TestClient_Embed_SendsSingleText(t *testing.T) {
	client := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer jina-key", r.Header.Get("Authorization"))

		var body request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"i'm so bored"}, body.Texts)

		_ = json.NewEncoder(w).Encode(response{Embeddings: [][]float32{{0.5, -0.25}, {9, 9}}})
	})

	vec, err := client.Embed(context.Background(), "i'm so bored")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -0.25}, vec, "only the first vector is used")
}

func TestClient_Embed_NoKeyOmitsAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(response{Embeddings: [][]float32{{1}}})
	}))
	defer server.Close()

	_, err := NewClient("", server.URL).Embed(context.Background(), "hi")
	require.NoError(t, err)
}

func TestNewClient_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultURL, NewClient("k", "").apiURL)
}

func TestClient_Embed_CancelledContext(t *testing.T) {
	called := false
	client := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vec, err := client.Embed(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, vec)
	assert.False(t, called)
}

func TestClient_Embed_ErrorBodyIsTruncated(t *testing.T) {
	client := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	})

	_, err := client.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "api returned error status: 502: "))
	assert.Equal(t, 1024, strings.Count(err.Error(), "x"))
}

func TestClient_Embed_BadResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"detail":"quota"}`, `api returned error status: 429: {"detail":"quota"}`},
		{"not json", http.StatusOK, "<html>", "failed to decode response"},
		{"no vectors", http.StatusOK, `{"embeddings":[]}`, "no embeddings returned"},
		{"empty vector", http.StatusOK, `{"embeddings":[[]]}`, "no embeddings returned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := embedServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			vec, err := client.Embed(context.Background(), "hello")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, vec)
		})
	}
}
