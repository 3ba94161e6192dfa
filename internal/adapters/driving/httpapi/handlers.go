package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/aikcal/internal/core/domain"
)

var errNotConfigured = errors.New("service not configured")

type handlers struct {
	services *Services
	version  string
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

type mealRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64"`
}

// aggregatedMeal is the scaled result without its breakdown.
type aggregatedMeal struct {
	Name                string            `json:"name"`
	QuantityGrams       int               `json:"quantity_grams"`
	DisplayQuantityText string            `json:"display_quantity_text"`
	Calories            int               `json:"calories"`
	Protein             float64           `json:"protein"`
	Fat                 float64           `json:"fat"`
	Carbs               float64           `json:"carbs"`
	Source              domain.MealSource `json:"source"`
}

type mealResponse struct {
	AggregatedMeal        aggregatedMeal               `json:"aggregated_meal"`
	DeconstructionDetails []domain.IngredientBreakdown `json:"deconstruction_details"`
}

func newMealResponse(m *domain.ResolvedMeal) mealResponse {
	details := m.Breakdown
	if details == nil {
		details = []domain.IngredientBreakdown{}
	}
	return mealResponse{
		AggregatedMeal: aggregatedMeal{
			Name:                m.Name,
			QuantityGrams:       m.QuantityGrams,
			DisplayQuantityText: m.DisplayQuantityText,
			Calories:            m.Calories,
			Protein:             m.Protein,
			Fat:                 m.Fat,
			Carbs:               m.Carbs,
			Source:              m.Source,
		},
		DeconstructionDetails: details,
	}
}

func (h *handlers) analyzeMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	image, err := domain.ParseImageBase64(req.ImageBase64)
	if err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.services.Nutrition.Resolve(r.Context(), domain.AnalysisRequest{Text: req.Text, Image: image})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newMealResponse(meal))
}

type workoutRequest struct {
	Text     string  `json:"text"`
	WeightKg float64 `json:"weight"`
}

func (h *handlers) estimateWorkout(w http.ResponseWriter, r *http.Request) {
	if h.services.Workout == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: errNotConfigured.Error()})
		return
	}
	var req workoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	estimate, err := h.services.Workout.Estimate(r.Context(), req.Text, req.WeightKg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, estimate)
}

type goalsRequest struct {
	Gender        string  `json:"gender"`
	DateOfBirth   string  `json:"date_of_birth"`
	WeightKg      float64 `json:"weight"`
	HeightCm      float64 `json:"height"`
	ActivityLevel string  `json:"activity_level"`
	WeeklyGoalKg  float64 `json:"weekly_goal_kg"`
	DietStyle     string  `json:"diet_style"`
}

func (g goalsRequest) toDomain() (domain.GoalRequest, error) {
	dob, err := time.Parse(time.DateOnly, strings.TrimSpace(g.DateOfBirth))
	if err != nil {
		return domain.GoalRequest{}, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return domain.GoalRequest{
		Gender:        domain.Gender(strings.ToLower(strings.TrimSpace(g.Gender))),
		DateOfBirth:   dob,
		WeightKg:      g.WeightKg,
		HeightCm:      g.HeightCm,
		ActivityLevel: domain.ActivityLevel(g.ActivityLevel),
		WeeklyGoalKg:  g.WeeklyGoalKg,
		DietStyle:     domain.DietStyle(g.DietStyle),
	}, nil
}

func (h *handlers) suggestGoals(w http.ResponseWriter, r *http.Request) {
	if h.services.Goals == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: errNotConfigured.Error()})
		return
	}
	var req goalsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	goalReq, err := req.toDomain()
	if err != nil {
		writeError(w, err)
		return
	}
	suggestion, err := h.services.Goals.Suggest(goalReq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func (h *handlers) lookupBarcode(w http.ResponseWriter, r *http.Request) {
	if h.services.Barcode == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: errNotConfigured.Error()})
		return
	}
	product, err := h.services.Barcode.Lookup(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *handlers) lookupFood(w http.ResponseWriter, r *http.Request) {
	if h.services.Catalog == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: errNotConfigured.Error()})
		return
	}
	entity, err := h.services.Catalog.Lookup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}
