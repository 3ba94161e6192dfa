package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
	"github.com/custodia-labs/aikcal/internal/core/ports/driving"
	"github.com/custodia-labs/aikcal/internal/logger"
)

// Ensure BarcodeService implements the interface.
var _ driving.BarcodeService = (*BarcodeService)(nil)

// barcodePattern accepts EAN-8, UPC-A, EAN-13 and GTIN-14 codes.
var barcodePattern = regexp.MustCompile(`^\d{8,14}$`)

// BarcodeService looks up packaged products by barcode.
type BarcodeService struct {
	catalog driven.ProductCatalog
}

// NewBarcodeService creates a new barcode service.
func NewBarcodeService(catalog driven.ProductCatalog) *BarcodeService {
	return &BarcodeService{catalog: catalog}
}

// Lookup validates the code and queries the catalog.
func (s *BarcodeService) Lookup(ctx context.Context, barcode string) (*domain.BarcodeProduct, error) {
	barcode = strings.TrimSpace(barcode)
	if !barcodePattern.MatchString(barcode) {
		return nil, fmt.Errorf("%w: barcode %q must be 8 to 14 digits", domain.ErrInvalidInput, barcode)
	}
	logger.Debug("Barcode lookup: %s", barcode)
	product, err := s.catalog.LookupBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("barcode %s: %w", barcode, err)
	}
	return product, nil
}
