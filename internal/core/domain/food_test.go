package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredient(name string, state ProductState, weight, kcal float64) Ingredient {
	return Ingredient{
		Product: Product{Name: name, State: state, Nutrients: Nutrients{Calories: kcal}},
		WeightG: weight,
	}
}

func TestParseProductState(t *testing.T) {
	assert.Equal(t, StateLiquid, ParseProductState("liquid"))
	assert.Equal(t, StateLiquid, ParseProductState(" LIQUID "))
	assert.Equal(t, StateSolid, ParseProductState("solid"))
	assert.Equal(t, StateSolid, ParseProductState(""))
	assert.Equal(t, StateSolid, ParseProductState("gas"))
}

func TestNutrients_ScaleAndAdd(t *testing.T) {
	n := Nutrients{Calories: 100, Protein: 10, Fat: 4, Carbs: 20}

	assert.Equal(t, Nutrients{Calories: 50, Protein: 5, Fat: 2, Carbs: 10}, n.Scale(0.5))
	assert.Equal(t, Nutrients{Calories: 200, Protein: 20, Fat: 8, Carbs: 40}, n.Add(n))
}

func TestNutrients_Validate(t *testing.T) {
	assert.NoError(t, Nutrients{}.Validate())
	assert.ErrorIs(t, Nutrients{Calories: -1}.Validate(), ErrInvalidInput)
}

func TestProduct_Validate(t *testing.T) {
	p := Product{Name: "ryż", State: StateSolid}
	require.NoError(t, p.Validate())

	p.Name = " "
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	p = Product{Name: "mleko", State: ProductState("plasma")}
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	p = Product{Name: "jabłko", State: StateSolid, AverageWeightG: -3}
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func TestIngredientSpec_Validate(t *testing.T) {
	assert.NoError(t, IngredientSpec{ProductName: "ryż", WeightG: 100}.Validate())
	assert.Error(t, IngredientSpec{ProductName: "", WeightG: 100}.Validate())
	assert.Error(t, IngredientSpec{ProductName: "ryż", WeightG: 0}.Validate())
	assert.Error(t, IngredientSpec{ProductName: "ryż", WeightG: -5}.Validate())
}

func TestDish_State(t *testing.T) {
	tests := []struct {
		name     string
		dish     Dish
		expected ProductState
	}{
		{
			name: "60% liquid is liquid",
			dish: Dish{Ingredients: []Ingredient{
				ingredient("bulion", StateLiquid, 60, 5),
				ingredient("makaron", StateSolid, 40, 350),
			}},
			expected: StateLiquid,
		},
		{
			name: "exactly 50% liquid is solid",
			dish: Dish{Ingredients: []Ingredient{
				ingredient("mleko", StateLiquid, 50, 60),
				ingredient("płatki", StateSolid, 50, 380),
			}},
			expected: StateSolid,
		},
		{
			name:     "no ingredients is solid",
			dish:     Dish{},
			expected: StateSolid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dish.State())
		})
	}
}

func TestDish_RecipeNutrients(t *testing.T) {
	d := Dish{Ingredients: []Ingredient{
		ingredient("kurczak", StateSolid, 100, 60),
		ingredient("ryż", StateSolid, 100, 130),
	}}

	assert.InDelta(t, 200.0, d.BaseWeightG(), 1e-9)
	assert.InDelta(t, 190.0, d.RecipeNutrients().Calories, 1e-9)
}

func TestFoodEntity_Name(t *testing.T) {
	assert.Equal(t, "ryż", ProductEntity(&Product{Name: "ryż"}).Name())
	assert.Equal(t, "rosół", DishEntity(&Dish{Name: "rosół"}).Name())
	assert.Equal(t, "", FoodEntity{Kind: FoodKindDish}.Name())
}

func TestPlaceholderProduct(t *testing.T) {
	p := PlaceholderProduct("szafran")

	assert.Equal(t, "szafran", p.Name)
	assert.Equal(t, StateSolid, p.State)
	assert.Equal(t, Nutrients{}, p.Nutrients)
}
