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

func modelServer(t *testing.T, models []ModelInfo) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(ListModelsResponse{Models: models})
	}))
}

func TestListModels(t *testing.T) {
	srv := modelServer(t, []ModelInfo{
		{Name: "llama2:latest", Size: 3825819519},
		{Name: "nomic-embed-text:latest", Size: 274302450},
	})
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))
	models, err := ms.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "llama2:latest", models[0].Name)
}

func TestSelectBestModelPriority(t *testing.T) {
	srv := modelServer(t, []ModelInfo{
		{Name: "nomic-embed-text:latest", Size: 274302450},
		{Name: "mistral:7b", Size: 4109865159},
		{Name: "llama3.2:3b", Size: 2019393189},
	})
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))
	model, err := ms.SelectBestModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3.2:3b", model)
}

func TestSelectBestModelFallsBackToLargest(t *testing.T) {
	srv := modelServer(t, []ModelInfo{
		{Name: "tinymodel", Size: 100},
		{Name: "bigmodel", Size: 900},
	})
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))
	model, err := ms.SelectBestModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bigmodel", model)
}

func TestSelectBestModelNoneAvailable(t *testing.T) {
	srv := modelServer(t, nil)
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))
	_, err := ms.SelectBestModel(context.Background())
	assert.ErrorContains(t, err, "no models available")
}

func TestGetDefaultModelVerifiesInstall(t *testing.T) {
	srv := modelServer(t, []ModelInfo{
		{Name: "llama2:latest", Size: 3825819519},
	})
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))

	model, err := ms.GetDefaultModel(context.Background(), "llama2:latest")
	require.NoError(t, err)
	assert.Equal(t, "llama2:latest", model)

	// A configured model that is not installed falls back to selection.
	model, err = ms.GetDefaultModel(context.Background(), "claude:latest")
	require.NoError(t, err)
	assert.Equal(t, "llama2:latest", model)
}

func TestListModelsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	ms := NewModelSelector(NewClient(srv.URL, time.Second))
	_, err := ms.ListModels(context.Background())
	assert.ErrorContains(t, err, "ollama API error: 502")
}
