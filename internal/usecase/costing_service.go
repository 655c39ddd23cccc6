package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

var one = decimal.NewFromInt(1)

// defaultFoodCostPct backs the suggested price when a recipe has no
// usable target percentage.
var defaultFoodCostPct = decimal.RequireFromString("0.28")

// CostingConfig holds configuration for the costing service.
type CostingConfig struct {
	// DefaultFoodCostPct replaces recipe targets that are zero or
	// negative. Zero falls back to 0.28.
	DefaultFoodCostPct decimal.Decimal
}

// CostingService computes recipe costs from linked ingredient prices.
// Costing is partial by design: an unpriceable ingredient yields a
// warning and is excluded from the total rather than aborting the
// recipe.
type CostingService struct {
	ingredients domain.IngredientRepository
	snapshots   domain.SnapshotRepository
	converter   *UnitConverter
	targetPct   decimal.Decimal
}

// NewCostingService wires a costing service.
func NewCostingService(
	ingredients domain.IngredientRepository,
	snapshots domain.SnapshotRepository,
	converter *UnitConverter,
	config CostingConfig,
) *CostingService {
	targetPct := config.DefaultFoodCostPct
	if !targetPct.IsPositive() {
		targetPct = defaultFoodCostPct
	}
	return &CostingService{
		ingredients: ingredients,
		snapshots:   snapshots,
		converter:   converter,
		targetPct:   targetPct,
	}
}

// CostRecipe prices every recipe ingredient, sums the waste-adjusted
// extended costs and records an append-only cost snapshot. Ingredients
// that cannot be resolved or priced are reported in
// UncostedIngredients and skipped.
func (s *CostingService) CostRecipe(recipe domain.Recipe) (domain.CostingResult, error) {
	if len(recipe.Ingredients) == 0 {
		return domain.CostingResult{}, fmt.Errorf("%w: recipe has no ingredients", domain.ErrInvalidRequest)
	}

	result := domain.CostingResult{RecipeID: recipe.ID}
	ingredientCosts := make(map[string]decimal.Decimal, len(recipe.Ingredients))

	for _, line := range recipe.Ingredients {
		ing, err := s.resolve(line)
		if err != nil {
			result.UncostedIngredients = append(result.UncostedIngredients, lineKey(line))
			result.Warnings = append(result.Warnings, fmt.Sprintf("ingredient %q: %v", lineKey(line), err))
			continue
		}
		if !ing.Priced {
			result.UncostedIngredients = append(result.UncostedIngredients, ing.ID)
			result.Warnings = append(result.Warnings, fmt.Sprintf("ingredient %q has no vendor price", ing.Name))
			continue
		}

		costed, err := s.costLine(line, ing)
		if err != nil {
			result.UncostedIngredients = append(result.UncostedIngredients, ing.ID)
			result.Warnings = append(result.Warnings, fmt.Sprintf("ingredient %q: %v", ing.Name, err))
			continue
		}

		result.Lines = append(result.Lines, costed)
		result.Warnings = append(result.Warnings, costed.Warnings...)
		result.TotalCost = result.TotalCost.Add(costed.ExtendedCost)
		ingredientCosts[ing.ID] = ingredientCosts[ing.ID].Add(costed.ExtendedCost)
	}

	portions := recipe.Portions
	if portions < 1 {
		portions = 1
	}
	result.CostPerPortion = result.TotalCost.Div(decimal.NewFromInt(int64(portions)))

	targetPct := recipe.TargetFoodCostPct
	if !targetPct.IsPositive() {
		targetPct = s.targetPct
	}
	result.SuggestedPrice = result.CostPerPortion.Div(targetPct)

	snapshot := domain.CostSnapshot{
		ID:              uuid.NewString(),
		RecipeID:        recipe.ID,
		TakenAt:         time.Now().UTC(),
		TotalCost:       result.TotalCost,
		IngredientCosts: ingredientCosts,
	}
	if prev, ok := s.snapshots.LatestSnapshot(recipe.ID); ok {
		snapshot.PreviousID = prev.ID
	}
	s.snapshots.AppendSnapshot(snapshot)
	result.SnapshotID = snapshot.ID

	return result, nil
}

// VarianceReport compares the two most recent cost snapshots of a recipe.
func (s *CostingService) VarianceReport(recipeID string) (domain.CostVariance, error) {
	history := s.snapshots.Snapshots(recipeID)
	if len(history) == 0 {
		return domain.CostVariance{}, fmt.Errorf("recipe %q: %w", recipeID, domain.ErrNoSnapshot)
	}
	if len(history) == 1 {
		return domain.CostVariance{}, fmt.Errorf("recipe %q has a single snapshot: %w", recipeID, domain.ErrNoSnapshot)
	}
	prev := history[len(history)-2]
	curr := history[len(history)-1]
	return domain.Variance(prev, curr), nil
}

// resolve finds the linked ingredient by id first, then by name or alias.
func (s *CostingService) resolve(line domain.RecipeIngredient) (domain.Ingredient, error) {
	if line.IngredientID != "" {
		ing, err := s.ingredients.IngredientByID(line.IngredientID)
		if err == nil {
			return ing, nil
		}
		if !errors.Is(err, domain.ErrIngredientNotFound) {
			return domain.Ingredient{}, err
		}
	}
	if line.Name != "" {
		return s.ingredients.IngredientByName(line.Name)
	}
	return domain.Ingredient{}, domain.ErrIngredientNotFound
}

// costLine converts the called-for quantity into the ingredient's
// priced unit and applies the waste adjustment:
// extended = converted * unitCost / (1 - waste).
func (s *CostingService) costLine(line domain.RecipeIngredient, ing domain.Ingredient) (domain.CostedLine, error) {
	costUnit := ing.CostUnit
	if costUnit == "" {
		costUnit = ing.DefaultUnit
	}

	conv, err := s.converter.Convert(line.Quantity, line.Unit, costUnit, ing.Name)
	if err != nil {
		return domain.CostedLine{}, err
	}

	usable := one.Sub(ing.WasteFactor)
	extended := conv.Value.Mul(ing.CostPerUnit).Div(usable)

	costed := domain.CostedLine{
		IngredientID: ing.ID,
		Name:         ing.Name,
		Quantity:     line.Quantity,
		Unit:         line.Unit,
		ConvertedQty: conv.Value,
		CostUnit:     costUnit,
		UnitCost:     ing.CostPerUnit,
		ExtendedCost: extended.Round(4),
	}
	if conv.Warning != "" {
		costed.Warnings = append(costed.Warnings, conv.Warning)
	}
	return costed, nil
}

func lineKey(line domain.RecipeIngredient) string {
	if line.IngredientID != "" {
		return line.IngredientID
	}
	return line.Name
}
