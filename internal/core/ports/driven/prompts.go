package driven

// PromptStore provides access to oracle prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Unknown names return an error; known names fall back to built-in defaults.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Templates are rendered with fmt.Sprintf.
const (
	// PromptPhotoParse asks for {name, quantity, unit} from a meal photo.
	// No placeholders.
	PromptPhotoParse = "photo_parse"

	// PromptLearnAggregate asks for the aggregate nutrients of a food.
	// Placeholders: %s (name), %s (quantity with unit).
	PromptLearnAggregate = "learn_aggregate"

	// PromptLearnDecomposition asks for the base recipe of a dish.
	// Placeholders: %s (dish name), %s (base serving with unit).
	PromptLearnDecomposition = "learn_decomposition"

	// PromptLearnProduct asks for per-100 nutrients of a single ingredient.
	// Placeholder: %s (ingredient name).
	PromptLearnProduct = "learn_product"

	// PromptWorkoutEstimate asks for calories burned by an activity.
	// Placeholders: %s (activity description), %s (body weight in kg).
	PromptWorkoutEstimate = "workout_estimate"
)

// PromptNames lists every prompt the application loads.
func PromptNames() []string {
	return []string{
		PromptPhotoParse,
		PromptLearnAggregate,
		PromptLearnDecomposition,
		PromptLearnProduct,
		PromptWorkoutEstimate,
	}
}
