package domain

import "github.com/shopspring/decimal"

// CatalogRepository owns the vendor catalogs. Catalogs are replaced
// wholesale, never patched in place, and reads hand back copies so a
// matching pass can run against a stable snapshot while a re-import
// lands concurrently.
type CatalogRepository interface {
	ReplaceCatalog(vendor string, products []VendorProduct)
	Catalog(vendor string) ([]VendorProduct, error)
	Vendors() []string
}

// IngredientRepository owns the canonical ingredient list.
type IngredientRepository interface {
	UpsertIngredient(ing Ingredient) (Ingredient, error)
	IngredientByID(id string) (Ingredient, error)
	// IngredientByName resolves by exact name or alias, case-insensitive.
	IngredientByName(name string) (Ingredient, error)
	Ingredients() []Ingredient
	// UpdateIngredientCost refreshes the priced cost from a preferred
	// vendor match.
	UpdateIngredientCost(id string, cost decimal.Decimal, unit Unit, vendor string) error
}

// MatchRepository keeps the outcome of matching passes. ReplaceMatches
// supersedes prior auto-matches but keeps manually verified ones.
type MatchRepository interface {
	ReplaceMatches(vendorA, vendorB string, matches []ProductMatch)
	Matches(vendorA, vendorB string) []ProductMatch
	VerifyMatch(vendorA, vendorB, codeA, codeB string) error
}

// SnapshotRepository is the append-only cost history.
type SnapshotRepository interface {
	AppendSnapshot(s CostSnapshot)
	Snapshots(recipeID string) []CostSnapshot
	LatestSnapshot(recipeID string) (CostSnapshot, bool)
}
