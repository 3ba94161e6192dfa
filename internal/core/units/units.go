package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

// CanonicalUnit is the base unit a quantity is standardized into.
type CanonicalUnit string

// Canonical units.
const (
	Grams       CanonicalUnit = "g"
	Millilitres CanonicalUnit = "ml"
)

// measure is one row of the conversion table. A zero factor means the unit
// has no meaning for that state.
type measure struct {
	solid  float64
	liquid float64
	base   CanonicalUnit // overrides the per-state base for fixed metric units
	piece  bool
}

var (
	mass   = func(f float64) measure { return measure{solid: f, liquid: f, base: Grams} }
	volume = func(f float64) measure { return measure{solid: f, liquid: f, base: Millilitres} }
)

var measures = map[string]measure{
	"g":         mass(1),
	"gram":      mass(1),
	"gramy":     mass(1),
	"dag":       mass(10),
	"dkg":       mass(10),
	"dekagram":  mass(10),
	"kg":        mass(1000),
	"kilogram":  mass(1000),
	"kilogramy": mass(1000),

	"ml":        volume(1),
	"mililitr":  volume(1),
	"mililitry": volume(1),
	"l":         volume(1000),
	"liter":     volume(1000),
	"litre":     volume(1000),
	"litr":      volume(1000),
	"litry":     volume(1000),

	"glass":    {solid: 150, liquid: 250},
	"cup":      {solid: 150, liquid: 250},
	"szklanka": {solid: 150, liquid: 250},
	"szklanki": {solid: 150, liquid: 250},

	"tablespoon": {solid: 15, liquid: 15},
	"tbsp":       {solid: 15, liquid: 15},
	"łyżka":      {solid: 15, liquid: 15},
	"łyżki":      {solid: 15, liquid: 15},

	"teaspoon": {solid: 5, liquid: 5},
	"tsp":      {solid: 5, liquid: 5},
	"łyżeczka": {solid: 5, liquid: 5},
	"łyżeczki": {solid: 5, liquid: 5},

	"plate":   {solid: 200, liquid: 300},
	"talerz":  {solid: 200, liquid: 300},
	"talerze": {solid: 200, liquid: 300},
	"talerza": {solid: 200, liquid: 300},

	"bowl":  {solid: 180, liquid: 400},
	"miska": {solid: 180, liquid: 400},
	"miski": {solid: 180, liquid: 400},

	"slice":   {solid: 20},
	"plaster": {solid: 20},
	"plastry": {solid: 20},

	"kromka": {solid: 35},
	"kromki": {solid: 35},

	"handful": {solid: 30},
	"garść":   {solid: 30},
	"garści":  {solid: 30},

	"piece":  {piece: true},
	"pc":     {piece: true},
	"sztuka": {piece: true},
	"sztuki": {piece: true},
	"sztuk":  {piece: true},
	"szt":    {piece: true},
	"szt.":   {piece: true},
}

// lookupUnit finds a table row for a unit token, trying the raw token first
// and then English plural suffixes.
func lookupUnit(token string) (measure, bool) {
	if m, ok := measures[token]; ok {
		return m, true
	}
	if stem, ok := strings.CutSuffix(token, "ies"); ok {
		if m, ok := measures[stem+"y"]; ok {
			return m, true
		}
	}
	if stem, ok := strings.CutSuffix(token, "es"); ok {
		if m, ok := measures[stem]; ok {
			return m, true
		}
	}
	if stem, ok := strings.CutSuffix(token, "s"); ok {
		if m, ok := measures[stem]; ok {
			return m, true
		}
	}
	return measure{}, false
}

// IsKnownUnit reports whether unit is a recognized measurement unit.
func IsKnownUnit(unit string) bool {
	_, ok := lookupUnit(normalizeUnit(unit))
	return ok
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Standardize converts amount of unit into grams or millilitres.
//
// Piece-class and unrecognized units use averageWeightG when it is positive,
// giving grams. Recognized units are converted via the table for state.
// Anything left over fails with domain.ErrUnrecognizedUnit.
func Standardize(amount float64, unit string, state domain.ProductState, averageWeightG float64) (float64, CanonicalUnit, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, "", fmt.Errorf("%w: amount %v", domain.ErrInvalidInput, amount)
	}

	token := normalizeUnit(unit)
	m, known := lookupUnit(token)

	if (!known || m.piece) && averageWeightG > 0 {
		return amount * averageWeightG, Grams, nil
	}

	if known {
		factor, base := m.solid, Grams
		if state == domain.StateLiquid {
			factor, base = m.liquid, Millilitres
		}
		if m.base != "" {
			base = m.base
		}
		if factor > 0 {
			return amount * factor, base, nil
		}
		if averageWeightG > 0 {
			return amount * averageWeightG, Grams, nil
		}
	}

	return 0, "", fmt.Errorf("%w: %q for %s product", domain.ErrUnrecognizedUnit, unit, state)
}
