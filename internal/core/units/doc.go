// Package units standardizes food quantities and names.
//
// Standardize converts a (quantity, unit) pair into grams or millilitres
// using a state-aware table of kitchen measures, preferring a product's
// average piece weight for countable units. NormalizeName maps free-form
// food names onto the canonical keys used by the food store.
package units
