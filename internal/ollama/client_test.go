package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var gotReq GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(GenerateResponse{
			Model:    gotReq.Model,
			Response: "You seemed happy that day.",
			Done:     true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	answer, err := c.Generate(context.Background(), "llama2", "How was my week?")
	require.NoError(t, err)

	assert.Equal(t, "You seemed happy that day.", answer)
	assert.Equal(t, "llama2", gotReq.Model)
	assert.Equal(t, "How was my week?", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model failed to load", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Generate(context.Background(), "llama2", "prompt")
	assert.ErrorContains(t, err, "ollama API error: 500")
}

func TestGenerateUnreachableServer(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Generate(context.Background(), "llama2", "prompt")
	assert.Error(t, err)
}

func TestGenerateMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Generate(context.Background(), "llama2", "prompt")
	assert.ErrorContains(t, err, "failed to decode response")
}
