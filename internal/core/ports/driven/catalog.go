package driven

import (
	"context"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// ProductCatalog looks up packaged products in an external database.
type ProductCatalog interface {
	// LookupBarcode returns domain.ErrNotFound for unknown codes.
	LookupBarcode(ctx context.Context, barcode string) (*domain.BarcodeProduct, error)
}
