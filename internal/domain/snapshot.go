package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostSnapshot is an append-only record of one recipe costing: the
// total plus a per-ingredient cost map, linked to the previous snapshot
// so variance is simple subtraction.
type CostSnapshot struct {
	ID              string                     `json:"id"`
	RecipeID        string                     `json:"recipeId"`
	TakenAt         time.Time                  `json:"takenAt"`
	TotalCost       decimal.Decimal            `json:"totalCost"`
	IngredientCosts map[string]decimal.Decimal `json:"ingredientCosts"`
	PreviousID      string                     `json:"previousId,omitempty"`
}

// IngredientVariance is the cost movement of a single ingredient
// between two snapshots.
type IngredientVariance struct {
	Delta   decimal.Decimal `json:"delta"`
	Percent decimal.Decimal `json:"percent"`
}

// CostVariance compares two snapshots of the same recipe.
type CostVariance struct {
	RecipeID      string                        `json:"recipeId"`
	FromID        string                        `json:"fromId"`
	ToID          string                        `json:"toId"`
	TotalDelta    decimal.Decimal               `json:"totalDelta"`
	TotalPercent  decimal.Decimal               `json:"totalPercent"`
	PerIngredient map[string]IngredientVariance `json:"perIngredient"`
}

// Variance computes the movement from prev to curr. Ingredients present
// on only one side show the full cost as the delta.
func Variance(prev, curr CostSnapshot) CostVariance {
	v := CostVariance{
		RecipeID:      curr.RecipeID,
		FromID:        prev.ID,
		ToID:          curr.ID,
		TotalDelta:    curr.TotalCost.Sub(prev.TotalCost),
		PerIngredient: make(map[string]IngredientVariance),
	}
	if prev.TotalCost.IsPositive() {
		v.TotalPercent = v.TotalDelta.Div(prev.TotalCost).Mul(decimal.NewFromInt(100)).Round(2)
	}

	ids := make(map[string]struct{}, len(prev.IngredientCosts)+len(curr.IngredientCosts))
	for id := range prev.IngredientCosts {
		ids[id] = struct{}{}
	}
	for id := range curr.IngredientCosts {
		ids[id] = struct{}{}
	}

	for id := range ids {
		before := prev.IngredientCosts[id]
		after := curr.IngredientCosts[id]
		iv := IngredientVariance{Delta: after.Sub(before)}
		if before.IsPositive() {
			iv.Percent = iv.Delta.Div(before).Mul(decimal.NewFromInt(100)).Round(2)
		}
		v.PerIngredient[id] = iv
	}
	return v
}
