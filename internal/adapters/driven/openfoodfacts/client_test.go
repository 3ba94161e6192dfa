package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
}

func TestClient_LookupBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/5900259127761.json", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Serek wiejski",
				"nutriments": {
					"energy-kcal_100g": 97,
					"proteins_100g": "11",
					"fat_100g": 5,
					"carbohydrates_100g": null
				}
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL + "/"})
	product, err := c.LookupBarcode(context.Background(), "5900259127761")
	require.NoError(t, err)
	assert.Equal(t, "5900259127761", product.Barcode)
	assert.Equal(t, "Serek wiejski", product.Name)
	assert.Equal(t, SourceName, product.Source)
	assert.Equal(t, domain.Nutrients{Calories: 97, Protein: 11, Fat: 5}, product.Nutrients)
}

func TestClient_LookupBarcode_MissingName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":1,"product":{"nutriments":{}}}`))
	}))
	defer server.Close()

	product, err := NewClient(Config{BaseURL: server.URL}).LookupBarcode(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, unknownProductName, product.Name)
	assert.Equal(t, domain.Nutrients{}, product.Nutrients)
}

func TestClient_LookupBarcode_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status zero", http.StatusOK, `{"status":0,"status_verbose":"product not found"}`},
		{"http 404", http.StatusNotFound, `{"status":0}`},
		{"no product", http.StatusOK, `{"status":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(Config{BaseURL: server.URL}).LookupBarcode(context.Background(), "12345678")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestClient_LookupBarcode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).LookupBarcode(context.Background(), "12345678")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "upstream down")
}

func TestClient_LookupBarcode_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(Config{BaseURL: server.URL}).LookupBarcode(context.Background(), "12345678")
	assert.ErrorContains(t, err, "decode response")
}
