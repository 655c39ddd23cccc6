package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Ingredient is a canonical kitchen ingredient. Its cost comes from the
// preferred vendor match and mutates only when a new preferred match is
// chosen or the vendor price refreshes.
type Ingredient struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category,omitempty"`
	DefaultUnit Unit     `json:"defaultUnit"`
	Aliases     []string `json:"aliases,omitempty"`

	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	CostUnit    Unit            `json:"costUnit"`
	Priced      bool            `json:"priced"`

	// WasteFactor is the fraction lost to trim/spoilage, in [0, 1).
	// A factor of 1 implies infinite cost and is rejected up front.
	WasteFactor decimal.Decimal `json:"wasteFactor"`
	YieldFactor decimal.Decimal `json:"yieldFactor"`

	PreferredVendor string `json:"preferredVendor,omitempty"`
}

// Validate enforces the ingredient invariants at creation time.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidIngredient)
	}
	if i.WasteFactor.IsNegative() || i.WasteFactor.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: waste factor must be in [0, 1)", ErrInvalidIngredient)
	}
	if _, ok := i.DefaultUnit.Domain(); i.DefaultUnit != "" && !ok {
		return fmt.Errorf("%w: unknown default unit %q", ErrInvalidIngredient, i.DefaultUnit)
	}
	return nil
}

// RecipeIngredient references an ingredient with the quantity a recipe
// calls for. The unit may differ from the ingredient's priced unit.
type RecipeIngredient struct {
	IngredientID string          `json:"ingredientId"`
	Name         string          `json:"name,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
}

// Recipe is an ordered list of ingredients plus the figures needed to
// turn a total cost into a menu price.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Portions    int                `json:"portions"`
	Yield       string             `json:"yield,omitempty"`

	// TargetFoodCostPct is the desired ingredient-cost share of the menu
	// price, e.g. 0.28. Values <= 0 fall back to the configured default.
	TargetFoodCostPct decimal.Decimal `json:"targetFoodCostPct"`
}

// CostedLine is the costing outcome for a single recipe ingredient.
type CostedLine struct {
	IngredientID string          `json:"ingredientId"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
	ConvertedQty decimal.Decimal `json:"convertedQty"`
	CostUnit     Unit            `json:"costUnit"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	ExtendedCost decimal.Decimal `json:"extendedCost"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// CostingResult is the full costing of one recipe. Unpriceable
// ingredients are excluded from the total and listed in
// UncostedIngredients rather than aborting the recipe.
type CostingResult struct {
	RecipeID            string          `json:"recipeId"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	CostPerPortion      decimal.Decimal `json:"costPerPortion"`
	SuggestedPrice      decimal.Decimal `json:"suggestedPrice"`
	Lines               []CostedLine    `json:"lines"`
	UncostedIngredients []string        `json:"uncostedIngredients,omitempty"`
	Warnings            []string        `json:"warnings,omitempty"`
	SnapshotID          string          `json:"snapshotId,omitempty"`
}
