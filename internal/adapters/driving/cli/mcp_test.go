package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aikcal/internal/adapters/driving/mcp"
	"github.com/custodia-labs/aikcal/internal/core/domain"
)

func TestMCPServeCmd_RejectsBadPort(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "mcp", "serve", "--port=70000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMCPServeCmd_RequiresNutrition(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	SetServices(&Services{})

	_, err := execute(t, "mcp", "serve", "--port=0")
	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingNutritionService)
}
