// Package openfoodfacts provides a product catalog backed by the public
// Open Food Facts database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ProductCatalog = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultOpenFoodFactsBaseURL
	DefaultTimeout = 10 * time.Second

	// SourceName tags every product returned by this catalog.
	SourceName = "Open Food Facts"

	unknownProductName = "Unknown product"
	userAgent          = "aikcal/1.0 (+https://github.com/custodia-labs/aikcal)"
)

// Config holds configuration for the Open Food Facts client.
type Config struct {
	// BaseURL is the API root (default: https://world.openfoodfacts.org/api/v2).
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Client looks up products by barcode.
type Client struct {
	client  *http.Client
	baseURL string
}

// productResponse is the /product/{code}.json response format.
type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string     `json:"product_name"`
		Nutriments  nutriments `json:"nutriments"`
	} `json:"product"`
}

type nutriments struct {
	EnergyKcal100g    number `json:"energy-kcal_100g"`
	Proteins100g      number `json:"proteins_100g"`
	Fat100g           number `json:"fat_100g"`
	Carbohydrates100g number `json:"carbohydrates_100g"`
}

// number accepts both JSON numbers and numeric strings. Unparseable
// values decode as zero.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = 0
		return nil //nolint:nilerr
	}
	*n = number(v)
	return nil
}

// NewClient creates a new Open Food Facts client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// LookupBarcode fetches a product. Unknown codes return domain.ErrNotFound.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*domain.BarcodeProduct, error) {
	endpoint := c.baseURL + "/product/" + url.PathEscape(barcode) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open food facts: send request: %w", err)
	}
	defer resp.Body.Close()

	// The API answers 404 with a status 0 body for unknown codes.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("open food facts: %w", domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("open food facts error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed productResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("open food facts: decode response: %w", err)
	}
	if parsed.Status != 1 || parsed.Product == nil {
		return nil, fmt.Errorf("open food facts: %w", domain.ErrNotFound)
	}

	name := strings.TrimSpace(parsed.Product.ProductName)
	if name == "" {
		name = unknownProductName
	}
	n := parsed.Product.Nutriments
	return &domain.BarcodeProduct{
		Barcode: barcode,
		Name:    name,
		Nutrients: domain.Nutrients{
			Calories: float64(n.EnergyKcal100g),
			Protein:  float64(n.Proteins100g),
			Fat:      float64(n.Fat100g),
			Carbs:    float64(n.Carbohydrates100g),
		},
		Source: SourceName,
	}, nil
}
