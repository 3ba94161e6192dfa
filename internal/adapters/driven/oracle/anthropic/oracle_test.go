package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestNewOracle_RequiresAPIKey(t *testing.T) {
	_, err := NewOracle(Config{})
	assert.Error(t, err)

	o, err := NewOracle(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, o.ModelName())
}

func TestOracle_Infer(t *testing.T) {
	var got messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"name\":"},{"type":"text","text":"\"ryż\"}"}]}`))
	}))
	defer server.Close()

	o, err := NewOracle(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)

	img := &domain.Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}
	answer, err := o.Infer(context.Background(), "what is this", img)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ryż"}`, answer)

	require.Len(t, got.Messages, 1)
	blocks := got.Messages[0].Content
	require.Len(t, blocks, 2)
	assert.Equal(t, "image", blocks[0].Type)
	assert.Equal(t, "image/png", blocks[0].Source.MediaType)
	assert.Equal(t, img.Base64(), blocks[0].Source.Data)
	assert.Equal(t, "what is this", blocks[1].Text)
}

func TestOracle_Infer_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	o, err := NewOracle(Config{APIKey: "bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = o.Infer(context.Background(), "prompt", nil)
	assert.ErrorContains(t, err, "invalid x-api-key")
}

func TestOracle_Ping(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	o, err := NewOracle(Config{APIKey: "key", BaseURL: server.URL})
	require.NoError(t, err)
	assert.NoError(t, o.Ping(context.Background()))

	status.Store(http.StatusForbidden)
	assert.ErrorContains(t, o.Ping(context.Background()), "status 403")
}
