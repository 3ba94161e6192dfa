package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var testImage = &domain.Image{Data: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"}

func TestQueryParser_Empty(t *testing.T) {
	parser := NewQueryParser(nil, mockPromptStore{})

	_, ok := parser.Parse(context.Background(), domain.AnalysisRequest{})
	assert.False(t, ok)

	_, ok = parser.Parse(context.Background(), domain.AnalysisRequest{Text: "   "})
	assert.False(t, ok)
}

func TestQueryParser_Text(t *testing.T) {
	tests := []struct {
		text     string
		name     string
		quantity float64
		unit     string
	}{
		{"200g ryż", "ryż", 200, "g"},
		{"200 g Ryż", "ryż", 200, "g"},
		{"1,5 talerza zupy pomidorowej", "zupy pomidorowej", 1.5, "talerza"},
		{"0.5 kg kurczak", "kurczak", 0.5, "kg"},
		{"2 jabłka", "jabłka", 2, "jabłka"},
		{"3 szt. schabowy", "kotlet schabowy", 3, "szt."},
		{"banan", "banan", 1, "piece"},
		{"Dewolaj", "kotlet de volaille", 1, "piece"},
	}

	parser := NewQueryParser(nil, mockPromptStore{})
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Text: tt.text})
			require.True(t, ok)
			assert.Equal(t, tt.name, q.Name)
			assert.InDelta(t, tt.quantity, q.Quantity, 1e-9)
			assert.Equal(t, tt.unit, q.Unit)
		})
	}
}

func TestQueryParser_KeepsOriginalText(t *testing.T) {
	parser := NewQueryParser(nil, mockPromptStore{})

	q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Text: "1 talerz Schabowy"})
	require.True(t, ok)
	assert.Equal(t, "kotlet schabowy", q.Name)
	assert.Equal(t, "Schabowy", q.OriginalText)
}

func TestQueryParser_Photo(t *testing.T) {
	oracle := newMockOracle().on("photo_parse", "```json\n{\"name\": \"Jajecznica\", \"quantity\": 180, \"unit\": \"g\"}\n```")
	parser := NewQueryParser(oracle, mockPromptStore{})

	q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Image: testImage})
	require.True(t, ok)
	assert.Equal(t, "jajecznica", q.Name)
	assert.InDelta(t, 180.0, q.Quantity, 1e-9)
	assert.Equal(t, "g", q.Unit)
	assert.Equal(t, 1, oracle.images)
}

func TestQueryParser_PhotoFailureUsesDefaults(t *testing.T) {
	tests := []struct {
		name   string
		oracle *mockOracle
	}{
		{"oracle down", newMockOracle()},
		{"malformed", newMockOracle().on("photo_parse", "a plate of eggs")},
		{"missing unit", newMockOracle().on("photo_parse", `{"name": "jajecznica", "quantity": 180}`)},
		{"zero quantity", newMockOracle().on("photo_parse", `{"name": "jajecznica", "quantity": 0, "unit": "g"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewQueryParser(tt.oracle, mockPromptStore{})
			q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Image: testImage})
			require.True(t, ok)
			assert.Equal(t, photoDefaultName, q.Name)
			assert.InDelta(t, photoDefaultQuantity, q.Quantity, 1e-9)
			assert.Equal(t, photoDefaultUnit, q.Unit)
		})
	}

	t.Run("nil oracle", func(t *testing.T) {
		parser := NewQueryParser(nil, mockPromptStore{})
		q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Image: testImage})
		require.True(t, ok)
		assert.Equal(t, photoDefaultName, q.Name)
	})
}

func TestQueryParser_TextOverridesPhotoName(t *testing.T) {
	oracle := newMockOracle().on("photo_parse", `{"name": "zupa", "quantity": 300, "unit": "ml"}`)
	parser := NewQueryParser(oracle, mockPromptStore{})

	q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Text: "Rosół", Image: testImage})
	require.True(t, ok)
	assert.Equal(t, "rosół", q.Name)
	assert.InDelta(t, 300.0, q.Quantity, 1e-9)
	assert.Equal(t, "ml", q.Unit)
}

func TestQueryParser_TextQuantityOverridesPhoto(t *testing.T) {
	oracle := newMockOracle().on("photo_parse", `{"name": "zupa", "quantity": 300, "unit": "ml"}`)
	parser := NewQueryParser(oracle, mockPromptStore{})

	q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Text: "2 talerze rosół", Image: testImage})
	require.True(t, ok)
	assert.Equal(t, "rosół", q.Name)
	assert.InDelta(t, 2.0, q.Quantity, 1e-9)
	assert.Equal(t, "talerze", q.Unit)
}

func TestQueryParser_PhotoFailureWithText(t *testing.T) {
	parser := NewQueryParser(newMockOracle(), mockPromptStore{})

	q, ok := parser.Parse(context.Background(), domain.AnalysisRequest{Text: "pierogi", Image: testImage})
	require.True(t, ok)
	assert.Equal(t, "pierogi", q.Name)
	assert.InDelta(t, photoDefaultQuantity, q.Quantity, 1e-9)
	assert.Equal(t, photoDefaultUnit, q.Unit)
}
