package domain

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Image is a photo attached to an analysis request.
type Image struct {
	// Data is the raw encoded image (JPEG, PNG, ...).
	Data []byte

	// MIMEType is the content type, e.g. "image/jpeg".
	MIMEType string
}

// Base64 returns the image data as standard base64.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data URL.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// NewImage wraps raw bytes, sniffing the content type.
func NewImage(data []byte) *Image {
	return &Image{Data: data, MIMEType: http.DetectContentType(data)}
}

// ParseImageBase64 decodes a base64 image, with or without a
// "data:<mime>;base64," prefix. An empty string yields nil.
func ParseImageBase64(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	mime := ""
	if strings.HasPrefix(s, "data:") {
		header, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("%w: malformed data URL", ErrInvalidInput)
		}
		mime = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: image is not valid base64: %w", ErrInvalidInput, err)
	}
	img := NewImage(data)
	if mime != "" {
		img.MIMEType = mime
	}
	return img, nil
}

// AnalysisRequest is the input of a meal analysis. At least one of Text
// or Image must be set.
type AnalysisRequest struct {
	Text  string
	Image *Image
}

// IsEmpty returns true if the request carries no usable signal.
func (r AnalysisRequest) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == "" && (r.Image == nil || len(r.Image.Data) == 0)
}

// ParsedQuery is a structured (name, quantity, unit) triple.
type ParsedQuery struct {
	// Name is the canonical lookup name.
	Name string

	// Quantity is the requested amount in Unit.
	Quantity float64

	// Unit is the raw unit token, e.g. "g", "plate", "jabłka".
	Unit string

	// OriginalText is the name before normalization.
	OriginalText string
}

// DisplayQuantity formats the quantity as the user asked for it.
func (q ParsedQuery) DisplayQuantity() string {
	return FormatQuantity(q.Quantity, q.Unit)
}

// FormatQuantity renders "200 g" style text.
func FormatQuantity(quantity float64, unit string) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64) + " " + unit
}

// MealSource identifies which tier answered a request.
type MealSource string

// Available meal sources.
const (
	MealSourceDish    MealSource = "dish"
	MealSourceProduct MealSource = "product"
	MealSourceLearned MealSource = "learned"
)

// IngredientBreakdown is one scaled ingredient of a dish result.
type IngredientBreakdown struct {
	Name          string `json:"name"`
	QuantityGrams int    `json:"quantity_grams"`
	Calories      int    `json:"calories"`
}

// ResolvedMeal is the scaled nutrient result of an analysis.
type ResolvedMeal struct {
	Name                string                `json:"name"`
	QuantityGrams       int                   `json:"quantity_grams"`
	DisplayQuantityText string                `json:"display_quantity_text"`
	Calories            int                   `json:"calories"`
	Protein             float64               `json:"protein"`
	Fat                 float64               `json:"fat"`
	Carbs               float64               `json:"carbs"`
	Breakdown           []IngredientBreakdown `json:"deconstruction_details"`
	Source              MealSource            `json:"source"`
}

// SetNutrients applies the rounding policy: calories to the nearest integer,
// macros to one decimal place.
func (m *ResolvedMeal) SetNutrients(n Nutrients) {
	m.Calories = RoundInt(n.Calories)
	m.Protein = RoundTenth(n.Protein)
	m.Fat = RoundTenth(n.Fat)
	m.Carbs = RoundTenth(n.Carbs)
}

// RoundInt rounds half away from zero to an int.
func RoundInt(v float64) int {
	return int(math.Round(v))
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
