package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/embeddings", r.URL.Path)

		var req OllamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "hello world", req.Prompt)

		_ = json.NewEncoder(w).Encode(Response{Embedding: []float32{0.1, 0.2}})
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	resp, err := client.Generate(t.Context(), Request{Model: "test-model", Prompt: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, resp.Embedding)
}

func TestOllamaClient_Generate_MissingPrompt(t *testing.T) {
	client, err := NewOllamaClient("http://localhost:11434")
	require.NoError(t, err)

	_, err = client.Generate(t.Context(), Request{Model: "test-model"})
	require.Error(t, err)
}

func TestOllamaClient_GenerateBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)
		_ = json.NewEncoder(w).Encode(BatchResponse{Embeddings: [][]float32{{1}, {2}}})
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	resp, err := client.GenerateBatch(t.Context(), BatchRequest{
		Model:   "test-model",
		Prompts: []string{"a", "b"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Embeddings, 2)
}

func TestOllamaClient_Generate_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Generate(t.Context(), Request{Model: "missing", Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 404")
}

func TestEmbedder_EmbedTexts_TruncatesToMaxLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(BatchResponse{Embeddings: [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}})
	}))
	defer srv.Close()

	client, err := NewOllamaClient(srv.URL)
	require.NoError(t, err)

	embedder := NewEmbedder(client, WithModel("test-model"), WithMaxLength(2))

	vecs, err := embedder.EmbedTexts(t.Context(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 2}, vecs[0])
	assert.Equal(t, []float32{5, 6}, vecs[1])
}
