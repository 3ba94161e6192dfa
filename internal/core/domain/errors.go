package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	// Food stores return it when a canonical name is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or entity kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// Nutrition Errors.

	// ErrUnrecognizedUnit indicates a quantity unit matched no conversion rule
	// and no usable average unit weight was available.
	ErrUnrecognizedUnit = errors.New("unrecognized unit")

	// ErrOracleUnavailable indicates the AI oracle failed, timed out,
	// or returned an empty answer.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMalformedOracleResponse indicates the oracle answered with text that
	// is not valid JSON or lacks required keys.
	ErrMalformedOracleResponse = errors.New("malformed oracle response")

	// ErrAnalysisFailed indicates no usable nutrient result could be produced.
	// Callers should ask the user to rephrase.
	ErrAnalysisFailed = errors.New("analysis failed")
)
