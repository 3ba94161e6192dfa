package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestNewOracle_Defaults(t *testing.T) {
	o := NewOracle(Config{})
	assert.Equal(t, DefaultModel, o.ModelName())
	assert.Equal(t, DefaultBaseURL, o.baseURL)
}

func TestOracle_Infer(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"{\"name\":\"jabłko\"}","done":true}`))
	}))
	defer server.Close()

	o := NewOracle(Config{BaseURL: server.URL + "/"})
	img := &domain.Image{Data: []byte("png"), MIMEType: "image/png"}

	answer, err := o.Infer(context.Background(), "describe", img)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"jabłko"}`, answer)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
	assert.Equal(t, []string{img.Base64()}, got.Images)
}

func TestOracle_Infer_ModelMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llava' not found"}`))
	}))
	defer server.Close()

	o := NewOracle(Config{BaseURL: server.URL})
	_, err := o.Infer(context.Background(), "describe", nil)
	assert.ErrorContains(t, err, "not found")
}

func TestOracle_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	assert.NoError(t, NewOracle(Config{BaseURL: server.URL}).Ping(context.Background()))
}
