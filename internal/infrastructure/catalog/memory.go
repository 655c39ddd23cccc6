package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// MemoryStore is a thread-safe in-memory implementation of the catalog,
// ingredient, match and snapshot repositories. Reads hand back copies,
// so a matching pass holds a stable snapshot of both catalogs for its
// whole duration while a wholesale re-import can land concurrently.
type MemoryStore struct {
	mutex       sync.RWMutex
	catalogs    map[string][]domain.VendorProduct
	ingredients map[string]domain.Ingredient
	matches     map[string][]domain.ProductMatch
	snapshots   map[string][]domain.CostSnapshot
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		catalogs:    make(map[string][]domain.VendorProduct),
		ingredients: make(map[string]domain.Ingredient),
		matches:     make(map[string][]domain.ProductMatch),
		snapshots:   make(map[string][]domain.CostSnapshot),
	}
}

// ReplaceCatalog swaps in a new catalog for a vendor. Rows are immutable
// per import batch; there is deliberately no per-row update.
func (s *MemoryStore) ReplaceCatalog(vendor string, products []domain.VendorProduct) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.catalogs[vendorKey(vendor)] = append([]domain.VendorProduct(nil), products...)
}

// Catalog returns a copy of a vendor's catalog.
func (s *MemoryStore) Catalog(vendor string) ([]domain.VendorProduct, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	products, ok := s.catalogs[vendorKey(vendor)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownVendor, vendor)
	}
	return append([]domain.VendorProduct(nil), products...), nil
}

// Vendors lists vendor names with a stored catalog, sorted.
func (s *MemoryStore) Vendors() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]string, 0, len(s.catalogs))
	for vendor := range s.catalogs {
		out = append(out, vendor)
	}
	sort.Strings(out)
	return out
}

// UpsertIngredient validates and stores an ingredient, assigning an id
// when missing. Waste factor 1 is rejected here: it implies infinite
// cost downstream.
func (s *MemoryStore) UpsertIngredient(ing domain.Ingredient) (domain.Ingredient, error) {
	if err := ing.Validate(); err != nil {
		return domain.Ingredient{}, err
	}
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ingredients[ing.ID] = ing
	return ing, nil
}

// IngredientByID returns an ingredient by id.
func (s *MemoryStore) IngredientByID(id string) (domain.Ingredient, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ing, ok := s.ingredients[id]
	if !ok {
		return domain.Ingredient{}, fmt.Errorf("%w: id %q", domain.ErrIngredientNotFound, id)
	}
	return ing, nil
}

// IngredientByName resolves an ingredient by exact name or alias,
// case-insensitive.
func (s *MemoryStore) IngredientByName(name string) (domain.Ingredient, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, ing := range s.ingredients {
		if strings.ToLower(ing.Name) == needle {
			return ing, nil
		}
		for _, alias := range ing.Aliases {
			if strings.ToLower(alias) == needle {
				return ing, nil
			}
		}
	}
	return domain.Ingredient{}, fmt.Errorf("%w: name %q", domain.ErrIngredientNotFound, name)
}

// Ingredients returns all ingredients sorted by name.
func (s *MemoryStore) Ingredients() []domain.Ingredient {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]domain.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UpdateIngredientCost refreshes the priced cost from a vendor match.
// This is the only mutation an existing ingredient's price goes through.
func (s *MemoryStore) UpdateIngredientCost(id string, cost decimal.Decimal, unit domain.Unit, vendor string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ing, ok := s.ingredients[id]
	if !ok {
		return fmt.Errorf("%w: id %q", domain.ErrIngredientNotFound, id)
	}
	ing.CostPerUnit = cost
	ing.CostUnit = unit
	ing.Priced = true
	ing.PreferredVendor = vendor
	s.ingredients[id] = ing
	return nil
}

// ReplaceMatches stores the result of a matching pass. Verified matches
// already present are preserved if the new pass dropped them.
func (s *MemoryStore) ReplaceMatches(vendorA, vendorB string, matches []domain.ProductMatch) {
	key := matchKey(vendorA, vendorB)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	kept := append([]domain.ProductMatch(nil), matches...)
	for _, prior := range s.matches[key] {
		if !prior.Verified {
			continue
		}
		found := false
		for _, m := range kept {
			if m.A.ItemCode == prior.A.ItemCode && m.B.ItemCode == prior.B.ItemCode {
				found = true
				break
			}
		}
		if !found {
			kept = append(kept, prior)
		}
	}
	s.matches[key] = kept
}

// Matches returns a copy of the stored matches for a vendor pair.
func (s *MemoryStore) Matches(vendorA, vendorB string) []domain.ProductMatch {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return append([]domain.ProductMatch(nil), s.matches[matchKey(vendorA, vendorB)]...)
}

// VerifyMatch flags a stored match as manually confirmed.
func (s *MemoryStore) VerifyMatch(vendorA, vendorB, codeA, codeB string) error {
	key := matchKey(vendorA, vendorB)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, m := range s.matches[key] {
		// The stored pass may be oriented either way around.
		if (m.A.ItemCode == codeA && m.B.ItemCode == codeB) ||
			(m.A.ItemCode == codeB && m.B.ItemCode == codeA) {
			s.matches[key][i].Verified = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s/%s", domain.ErrMatchNotFound, codeA, codeB)
}

// AppendSnapshot records a cost snapshot. History is append-only.
func (s *MemoryStore) AppendSnapshot(snap domain.CostSnapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshots[snap.RecipeID] = append(s.snapshots[snap.RecipeID], snap)
}

// Snapshots returns the cost history of a recipe, oldest first.
func (s *MemoryStore) Snapshots(recipeID string) []domain.CostSnapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return append([]domain.CostSnapshot(nil), s.snapshots[recipeID]...)
}

// LatestSnapshot returns the most recent snapshot of a recipe.
func (s *MemoryStore) LatestSnapshot(recipeID string) (domain.CostSnapshot, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	history := s.snapshots[recipeID]
	if len(history) == 0 {
		return domain.CostSnapshot{}, false
	}
	return history[len(history)-1], true
}

func vendorKey(vendor string) string {
	return strings.TrimSpace(vendor)
}

// matchKey is order-insensitive so Compare(A, B) and Compare(B, A)
// share one stored pass.
func matchKey(vendorA, vendorB string) string {
	a, b := vendorKey(vendorA), vendorKey(vendorB)
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
