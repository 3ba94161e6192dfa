package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

type mockProductCatalog struct {
	products map[string]*domain.BarcodeProduct
	lookups  int
}

func (m *mockProductCatalog) LookupBarcode(_ context.Context, barcode string) (*domain.BarcodeProduct, error) {
	m.lookups++
	if p, ok := m.products[barcode]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func TestBarcodeService_Lookup(t *testing.T) {
	catalog := &mockProductCatalog{products: map[string]*domain.BarcodeProduct{
		"5900512300108": {
			Barcode:   "5900512300108",
			Name:      "Mleko UHT 2%",
			Nutrients: domain.Nutrients{Calories: 50, Protein: 3.4, Fat: 2, Carbs: 4.8},
			Source:    "Open Food Facts",
		},
	}}
	svc := NewBarcodeService(catalog)

	t.Run("found", func(t *testing.T) {
		product, err := svc.Lookup(context.Background(), " 5900512300108 ")
		require.NoError(t, err)
		assert.Equal(t, "Mleko UHT 2%", product.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Lookup(context.Background(), "12345678")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid codes never reach the catalog", func(t *testing.T) {
		before := catalog.lookups
		for _, code := range []string{"", "1234567", "123456789012345", "59005123abc08"} {
			_, err := svc.Lookup(context.Background(), code)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, code)
		}
		assert.Equal(t, before, catalog.lookups)
	})
}
