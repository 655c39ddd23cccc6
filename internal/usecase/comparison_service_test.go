package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/infrastructure/catalog"
)

func newComparisonFixture(t *testing.T) (*ComparisonService, *ImportService, *catalog.MemoryStore) {
	t.Helper()
	store := catalog.NewMemoryStore()
	parser := NewPackSizeParser()
	converter := NewUnitConverter()
	normalizer := NewProductNormalizer()
	prices := NewPriceNormalizer(converter)
	matcher := NewMatchingService(MatchConfig{})

	importer := NewImportService(parser, normalizer, prices, store, nil)
	comparator := NewComparisonService(matcher, converter, store, store, store)
	return comparator, importer, store
}

func importRows(t *testing.T, importer *ImportService, vendor string, rows []domain.VendorRow) {
	t.Helper()
	if _, err := importer.ImportCatalog(vendor, rows); err != nil {
		t.Fatalf("ImportCatalog(%s): %v", vendor, err)
	}
}

func TestCompare(t *testing.T) {
	t.Run("matches equivalent products across vendors", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-100", Description: "PEPR BLK FINE GRD", PackSize: "6/1LB", CasePrice: decimal.RequireFromString("298.95")},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-200", Description: "PEPPER BLACK FINE GROUND", PackSize: "25 LB", CasePrice: decimal.RequireFromString("79.71")},
		})

		report, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(report.Matches))
		}

		m := report.Matches[0]
		if m.Confidence != domain.ConfidenceHigh {
			t.Errorf("Confidence = %v, want HIGH", m.Confidence)
		}
		if !m.PriceComparable {
			t.Fatalf("PriceComparable = false, want true")
		}
		if m.RecommendedVendor != "SHAMROCK" {
			t.Errorf("RecommendedVendor = %q, want SHAMROCK", m.RecommendedVendor)
		}
		// 49.825/lb vs 3.1884/lb: bulk is ~93.6% cheaper.
		if m.SavingsPercent.LessThan(decimal.NewFromInt(90)) {
			t.Errorf("SavingsPercent = %v, want > 90", m.SavingsPercent)
		}
	})

	t.Run("reports vendor exclusive items", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "6/1LB", CasePrice: decimal.NewFromInt(50)},
			{ItemCode: "S-2", Description: "SAFFRON THREADS SPANISH", PackSize: "1 OZ", CasePrice: decimal.NewFromInt(90)},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-1", Description: "PEPPER BLACK GROUND", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80)},
			{ItemCode: "H-2", Description: "FLOUR ALL PURPOSE", PackSize: "50 LB", CasePrice: decimal.NewFromInt(20)},
		})

		report, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(report.Matches))
		}
		if len(report.OnlyA) != 1 || report.OnlyA[0].ItemCode != "S-2" {
			t.Errorf("OnlyA = %+v, want the saffron item", report.OnlyA)
		}
		if len(report.OnlyB) != 1 || report.OnlyB[0].ItemCode != "H-2" {
			t.Errorf("OnlyB = %+v, want the flour item", report.OnlyB)
		}
		if report.TotalPairs != 1 {
			t.Errorf("TotalPairs = %d, want 1", report.TotalPairs)
		}
	})

	t.Run("assigns each item at most once", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "6/1LB", CasePrice: decimal.NewFromInt(50)},
			{ItemCode: "S-2", Description: "PEPPER BLACK GROUND", PackSize: "25 LB", CasePrice: decimal.NewFromInt(70)},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-1", Description: "PEPPER BLACK GROUND", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80)},
		})

		report, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(report.Matches))
		}
		// S-1 comes first in catalog order and claims the only B item.
		if report.Matches[0].A.ItemCode != "S-1" {
			t.Errorf("matched A = %s, want S-1 (first come)", report.Matches[0].A.ItemCode)
		}
		if len(report.OnlyA) != 1 || report.OnlyA[0].ItemCode != "S-2" {
			t.Errorf("OnlyA = %+v, want S-2", report.OnlyA)
		}
	})

	t.Run("verified matches survive regeneration", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "6/1LB", CasePrice: decimal.NewFromInt(50)},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-1", Description: "PEPPER BLACK GROUND", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80)},
			{ItemCode: "H-2", Description: "PEPPER BLACK GROUND RESTAURANT", PackSize: "25 LB", CasePrice: decimal.NewFromInt(60)},
		})

		first, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(first.Matches))
		}
		pinned := first.Matches[0]
		if err := comparator.VerifyMatch("SYSCO", "SHAMROCK", pinned.A.ItemCode, pinned.B.ItemCode); err != nil {
			t.Fatalf("VerifyMatch: %v", err)
		}

		second, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, m := range second.Matches {
			if m.Verified && m.A.ItemCode == pinned.A.ItemCode && m.B.ItemCode == pinned.B.ItemCode {
				found = true
			}
		}
		if !found {
			t.Errorf("pinned pair missing from regenerated pass: %+v", second.Matches)
		}
	})

	t.Run("cross domain pair matches without price comparison", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "OIL CANOLA CLEAR FRY", PackSize: "35 LB", CasePrice: decimal.NewFromInt(40)},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-1", Description: "OIL CANOLA CLEAR FRY", PackSize: "4/1 GAL", CasePrice: decimal.NewFromInt(38)},
		})

		report, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(report.Matches))
		}
		if report.Matches[0].PriceComparable {
			t.Errorf("PriceComparable = true, want false for weight vs volume packs")
		}
		if report.Matches[0].RecommendedVendor != "" {
			t.Errorf("RecommendedVendor = %q, want empty for incomparable prices", report.Matches[0].RecommendedVendor)
		}
	})

	t.Run("unknown vendor is an error", func(t *testing.T) {
		comparator, importer, _ := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "6/1LB", CasePrice: decimal.NewFromInt(50)},
		})

		_, err := comparator.Compare("SYSCO", "NOBODY")
		if !errors.Is(err, domain.ErrUnknownVendor) {
			t.Errorf("error = %v, want ErrUnknownVendor", err)
		}
	})
}

func TestAdoptMatch(t *testing.T) {
	t.Run("adopts recommended vendor price onto ingredient", func(t *testing.T) {
		comparator, importer, store := newComparisonFixture(t)
		importRows(t, importer, "SYSCO", []domain.VendorRow{
			{ItemCode: "S-100", Description: "PEPR BLK FINE GRD", PackSize: "6/1LB", CasePrice: decimal.RequireFromString("298.95")},
		})
		importRows(t, importer, "SHAMROCK", []domain.VendorRow{
			{ItemCode: "H-200", Description: "PEPPER BLACK FINE GROUND", PackSize: "25 LB", CasePrice: decimal.RequireFromString("79.71")},
		})

		ing, err := store.UpsertIngredient(domain.Ingredient{Name: "Black Pepper", DefaultUnit: domain.Pound})
		if err != nil {
			t.Fatalf("UpsertIngredient: %v", err)
		}

		report, err := comparator.Compare("SYSCO", "SHAMROCK")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := comparator.AdoptMatch(ing.ID, report.Matches[0]); err != nil {
			t.Fatalf("AdoptMatch: %v", err)
		}

		updated, err := store.IngredientByID(ing.ID)
		if err != nil {
			t.Fatalf("IngredientByID: %v", err)
		}
		if !updated.Priced {
			t.Fatalf("Priced = false, want true")
		}
		if updated.PreferredVendor != "SHAMROCK" {
			t.Errorf("PreferredVendor = %q, want SHAMROCK", updated.PreferredVendor)
		}
		if updated.CostUnit != domain.Pound {
			t.Errorf("CostUnit = %v, want LB", updated.CostUnit)
		}
		// 79.71 for 25 lb is 3.1884 per lb.
		want := decimal.RequireFromString("3.1884")
		if diff := updated.CostPerUnit.Sub(want).Abs(); diff.GreaterThan(decimal.RequireFromString("0.0001")) {
			t.Errorf("CostPerUnit = %v, want %v", updated.CostPerUnit, want)
		}
	})

	t.Run("rejects below threshold matches", func(t *testing.T) {
		comparator, _, store := newComparisonFixture(t)
		ing, err := store.UpsertIngredient(domain.Ingredient{Name: "Black Pepper", DefaultUnit: domain.Pound})
		if err != nil {
			t.Fatalf("UpsertIngredient: %v", err)
		}

		err = comparator.AdoptMatch(ing.ID, domain.ProductMatch{Score: 0.4, Confidence: domain.ConfidenceLow, PriceComparable: true})
		if !errors.Is(err, domain.ErrBelowThreshold) {
			t.Errorf("error = %v, want ErrBelowThreshold", err)
		}
	})

	t.Run("rejects price incomparable matches", func(t *testing.T) {
		comparator, _, store := newComparisonFixture(t)
		ing, err := store.UpsertIngredient(domain.Ingredient{Name: "Canola Oil", DefaultUnit: domain.Gallon})
		if err != nil {
			t.Fatalf("UpsertIngredient: %v", err)
		}

		err = comparator.AdoptMatch(ing.ID, domain.ProductMatch{Score: 0.9, Confidence: domain.ConfidenceHigh})
		if !errors.Is(err, domain.ErrIncompatibleUnits) {
			t.Errorf("error = %v, want ErrIncompatibleUnits", err)
		}
	})
}
