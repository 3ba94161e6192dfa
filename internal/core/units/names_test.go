package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Ryż", "ryż"},
		{"  Kurczak   Pieczony ", "kurczak pieczony"},
		{"dewolaj", "kotlet de volaille"},
		{"Devolay", "kotlet de volaille"},
		{"kotlet po kijowsku", "kotlet de volaille"},
		{"Pałka z kurczaka", "podudzie z kurczaka"},
		{"schabowy", "kotlet schabowy"},
		{"mielony", "kotlet mielony"},
		{"dewolaje", "dewolaje"},
		{"devolays", "kotlet de volaille"},
		{"frytki", "frytki"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{"Dewolaj", "schabowy", "Ryż Biały", "bananas", "mielony", "x", "s"}
	for raw := range synonyms {
		inputs = append(inputs, raw)
	}
	for _, canonical := range synonyms {
		inputs = append(inputs, canonical)
	}

	for _, raw := range inputs {
		once := NormalizeName(raw)
		assert.Equal(t, once, NormalizeName(once), "NormalizeName(%q) is not idempotent", raw)
	}
}
