package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComparisonService runs matching passes between two vendor catalogs
// and builds price-comparison reports. A pass reads both catalogs once
// up front and works on those snapshots for its whole duration, so
// results are reproducible even if a catalog is re-imported mid-pass.
type ComparisonService struct {
	matcher     *MatchingService
	converter   *UnitConverter
	catalogs    domain.CatalogRepository
	matches     domain.MatchRepository
	ingredients domain.IngredientRepository
}

// NewComparisonService wires a comparison service.
func NewComparisonService(
	matcher *MatchingService,
	converter *UnitConverter,
	catalogs domain.CatalogRepository,
	matches domain.MatchRepository,
	ingredients domain.IngredientRepository,
) *ComparisonService {
	return &ComparisonService{
		matcher:     matcher,
		converter:   converter,
		catalogs:    catalogs,
		matches:     matches,
		ingredients: ingredients,
	}
}

// Compare runs a full matching pass between two vendors. Each vendor-A
// item is greedily assigned the best-scoring not-yet-claimed vendor-B
// item above the confidence floor, in catalog order with ties broken by
// catalog order. Manually verified matches from earlier passes claim
// their items first and are carried through untouched. Unclaimed items
// on either side are reported as vendor-exclusive.
func (s *ComparisonService) Compare(vendorA, vendorB string) (domain.ComparisonReport, error) {
	catalogA, err := s.catalogs.Catalog(vendorA)
	if err != nil {
		return domain.ComparisonReport{}, fmt.Errorf("vendor %q: %w", vendorA, err)
	}
	catalogB, err := s.catalogs.Catalog(vendorB)
	if err != nil {
		return domain.ComparisonReport{}, fmt.Errorf("vendor %q: %w", vendorB, err)
	}

	report := domain.ComparisonReport{
		VendorA:    vendorA,
		VendorB:    vendorB,
		TotalPairs: 0,
	}

	claimedA := make(map[int]bool, len(catalogA))
	claimedB := make(map[int]bool, len(catalogB))

	// Verified matches are sticky: re-pin them by item code before the
	// greedy pass so a regenerated pass cannot overwrite them.
	for _, prior := range s.matches.Matches(vendorA, vendorB) {
		if !prior.Verified {
			continue
		}
		// Stored passes are keyed order-insensitively; reorient if needed.
		if prior.A.Vendor != vendorA {
			prior.A, prior.B = prior.B, prior.A
		}
		idxA, idxB := -1, -1
		for i, p := range catalogA {
			if p.ItemCode == prior.A.ItemCode {
				idxA = i
				break
			}
		}
		for i, p := range catalogB {
			if p.ItemCode == prior.B.ItemCode {
				idxB = i
				break
			}
		}
		if idxA < 0 || idxB < 0 || claimedA[idxA] || claimedB[idxB] {
			continue
		}
		claimedA[idxA] = true
		claimedB[idxB] = true
		m := s.buildMatch(catalogA[idxA], catalogB[idxB])
		m.Verified = true
		report.Matches = append(report.Matches, m)
	}

	for i, a := range catalogA {
		if claimedA[i] {
			continue
		}
		bestIdx := -1
		bestScore := 0.0
		for j, b := range catalogB {
			if claimedB[j] {
				continue
			}
			score := s.matcher.Score(a, b).Total
			if score >= s.matcher.MinConfidence() && score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}
		if bestIdx < 0 {
			continue
		}
		claimedA[i] = true
		claimedB[bestIdx] = true
		report.Matches = append(report.Matches, s.buildMatch(a, catalogB[bestIdx]))
	}

	for i, a := range catalogA {
		if !claimedA[i] {
			report.OnlyA = append(report.OnlyA, a)
		}
	}
	for j, b := range catalogB {
		if !claimedB[j] {
			report.OnlyB = append(report.OnlyB, b)
		}
	}
	report.TotalPairs = len(report.Matches)

	s.matches.ReplaceMatches(vendorA, vendorB, report.Matches)
	return report, nil
}

// buildMatch scores a pair and, when both packs resolve to the same
// unit domain and carry a usable per-base price, attaches the price
// comparison. Cross-domain pairs may still match on identity but are
// never price-compared.
func (s *ComparisonService) buildMatch(a, b domain.VendorProduct) domain.ProductMatch {
	score := s.matcher.Score(a, b)
	m := domain.ProductMatch{
		A:             a,
		B:             b,
		Score:         score.Total,
		Confidence:    s.matcher.Classify(score),
		SpecAgreement: score.SpecAgreement,
	}

	domA, okA := a.Pack.Domain()
	domB, okB := b.Pack.Domain()
	if !a.Comparable || !b.Comparable || !okA || !okB || domA != domB {
		return m
	}

	m.PriceComparable = true
	m.PriceDiffPerBase = a.PricePerBase.Sub(b.PricePerBase)
	if a.PricePerBase.LessThanOrEqual(b.PricePerBase) {
		m.RecommendedVendor = a.Vendor
		if b.PricePerBase.IsPositive() {
			m.SavingsPercent = b.PricePerBase.Sub(a.PricePerBase).Div(b.PricePerBase).Mul(hundred).Round(2)
		}
	} else {
		m.RecommendedVendor = b.Vendor
		if a.PricePerBase.IsPositive() {
			m.SavingsPercent = a.PricePerBase.Sub(b.PricePerBase).Div(a.PricePerBase).Mul(hundred).Round(2)
		}
	}
	return m
}

// VerifyMatch marks a match as manually confirmed so later passes keep it.
func (s *ComparisonService) VerifyMatch(vendorA, vendorB, codeA, codeB string) error {
	return s.matches.VerifyMatch(vendorA, vendorB, codeA, codeB)
}

// AdoptMatch makes the recommended vendor of a match the preferred
// source for an ingredient, refreshing its cost per priced unit. A
// match below the confidence floor never becomes a preferred vendor.
func (s *ComparisonService) AdoptMatch(ingredientID string, m domain.ProductMatch) error {
	if m.Score < s.matcher.MinConfidence() || m.Confidence == domain.ConfidenceUnmatched {
		return fmt.Errorf("%w: score %.2f below %.2f", domain.ErrBelowThreshold, m.Score, s.matcher.MinConfidence())
	}
	if !m.PriceComparable {
		return fmt.Errorf("%w: packs resolve to different unit domains", domain.ErrIncompatibleUnits)
	}

	ing, err := s.ingredients.IngredientByID(ingredientID)
	if err != nil {
		return err
	}

	winner := m.A
	if m.RecommendedVendor == m.B.Vendor {
		winner = m.B
	}

	costUnit := ing.CostUnit
	if costUnit == "" {
		costUnit = ing.DefaultUnit
	}
	if costUnit == "" {
		costUnit = winner.Pack.Unit
	}

	// PricePerBase is per G/ML/EACH; re-express it per the ingredient's
	// priced unit.
	packDomain, _ := winner.Pack.Domain()
	oneUnit, err := s.converter.Convert(decimal.NewFromInt(1), costUnit, BaseUnit(packDomain), ing.Name)
	if err != nil {
		return err
	}
	costPerUnit := winner.PricePerBase.Mul(oneUnit.Value)

	return s.ingredients.UpdateIngredientCost(ing.ID, costPerUnit, costUnit, winner.Vendor)
}
