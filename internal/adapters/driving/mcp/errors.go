// Package mcp provides an MCP (Model Context Protocol) server adapter for aikcal.
// It lets AI assistants analyse meals, look up barcodes and suggest daily goals.
package mcp

import "errors"

// ErrMissingNutritionService is returned when the nutrition service is not provided.
var ErrMissingNutritionService = errors.New("mcp: nutrition service is required")

// errToolUnavailable is returned by tools whose backing service is not wired.
var errToolUnavailable = errors.New("mcp: tool is not available in this configuration")
