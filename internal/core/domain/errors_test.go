package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrUnrecognizedUnit", ErrUnrecognizedUnit},
		{"ErrOracleUnavailable", ErrOracleUnavailable},
		{"ErrMalformedOracleResponse", ErrMalformedOracleResponse},
		{"ErrAnalysisFailed", ErrAnalysisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

// The resolver wraps oracle failures in both classes at once.
func TestErrors_DoubleWrap(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrAnalysisFailed, ErrOracleUnavailable)

	assert.True(t, errors.Is(err, ErrAnalysisFailed))
	assert.True(t, errors.Is(err, ErrOracleUnavailable))
	assert.False(t, errors.Is(err, ErrMalformedOracleResponse))
}
