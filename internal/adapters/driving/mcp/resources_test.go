package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestExtractFoodName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"plain name", "aikcal://foods/rosół", "rosół"},
		{"escaped name", "aikcal://foods/kotlet%20schabowy", "kotlet schabowy"},
		{"invalid prefix", "file://foods/rosół", ""},
		{"invalid escape", "aikcal://foods/%zz", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFoodName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleFoodResource(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{Name: "jabłko", State: domain.StateSolid, Nutrients: domain.Nutrients{Calories: 52}}
	catalog := &mockCatalogService{entities: map[string]*domain.FoodEntity{
		"jabłko": {Kind: domain.FoodKindProduct, Product: product},
	}}
	server, err := NewServer(&Ports{Nutrition: &mockNutritionService{}, Catalog: catalog})
	require.NoError(t, err)

	t.Run("returns stored entity", func(t *testing.T) {
		req := makeReadResourceRequest("aikcal://foods/jab%C5%82ko")
		result, err := server.handleFoodResource(ctx, req)
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"kind": "product"`)
		assert.Contains(t, result.Contents[0].Text, `"calories": 52`)
	})

	t.Run("unknown food", func(t *testing.T) {
		req := makeReadResourceRequest("aikcal://foods/gruszka")
		_, err := server.handleFoodResource(ctx, req)
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		req := makeReadResourceRequest("aikcal://other")
		_, err := server.handleFoodResource(ctx, req)
		assert.Error(t, err)
	})
}
