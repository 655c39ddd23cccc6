package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/infrastructure/catalog"
)

func newImportFixture(t *testing.T) (*ImportService, *catalog.MemoryStore) {
	t.Helper()
	store := catalog.NewMemoryStore()
	converter := NewUnitConverter()
	return NewImportService(NewPackSizeParser(), NewProductNormalizer(), NewPriceNormalizer(converter), store, nil), store
}

func TestImportCatalog(t *testing.T) {
	t.Run("imports and prices well formed rows", func(t *testing.T) {
		importer, store := newImportFixture(t)
		report, err := importer.ImportCatalog("SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "6/1LB", CasePrice: decimal.NewFromInt(60)},
			{ItemCode: "S-2", Description: "FLOUR ALL PURPOSE", PackSize: "50 LB", CasePrice: decimal.NewFromInt(20)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Imported != 2 {
			t.Errorf("Imported = %d, want 2", report.Imported)
		}
		if report.Unparseable != 0 {
			t.Errorf("Unparseable = %d, want 0", report.Unparseable)
		}

		products, err := store.Catalog("SYSCO")
		if err != nil {
			t.Fatalf("Catalog: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("len(products) = %d, want 2", len(products))
		}
		if !products[0].Comparable {
			t.Errorf("Comparable = false, want true for parseable pack")
		}
		// 60 for 6 lb at 453.59237 g/lb.
		want := decimal.NewFromInt(60).Div(decimal.NewFromInt(6).Mul(decimal.RequireFromString("453.59237")))
		if !products[0].PricePerBase.Equal(want) {
			t.Errorf("PricePerBase = %v, want %v", products[0].PricePerBase, want)
		}
	})

	t.Run("unparseable pack degrades instead of aborting", func(t *testing.T) {
		importer, store := newImportFixture(t)
		report, err := importer.ImportCatalog("SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "SEASONAL PRODUCE", PackSize: "MARKET", CasePrice: decimal.NewFromInt(10)},
			{ItemCode: "S-2", Description: "PEPPER BLACK", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Imported != 2 {
			t.Errorf("Imported = %d, want 2 (bad rows still land)", report.Imported)
		}
		if report.Unparseable != 1 {
			t.Errorf("Unparseable = %d, want 1", report.Unparseable)
		}
		if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "S-1") {
			t.Errorf("Warnings = %v, want one naming S-1", report.Warnings)
		}

		products, err := store.Catalog("SYSCO")
		if err != nil {
			t.Fatalf("Catalog: %v", err)
		}
		if products[0].Comparable {
			t.Errorf("Comparable = true, want false for unparseable pack")
		}
		if !products[1].Comparable {
			t.Errorf("Comparable = false, want true")
		}
	})

	t.Run("empty description rows are skipped", func(t *testing.T) {
		importer, _ := newImportFixture(t)
		report, err := importer.ImportCatalog("SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "", PackSize: "25 LB", CasePrice: decimal.NewFromInt(10)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Imported != 0 {
			t.Errorf("Imported = %d, want 0", report.Imported)
		}
		if len(report.Warnings) != 1 {
			t.Errorf("Warnings = %v, want one skip warning", report.Warnings)
		}
	})

	t.Run("explicit brand column feeds the match signal", func(t *testing.T) {
		importer, store := newImportFixture(t)
		if _, err := importer.ImportCatalog("SYSCO", []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK GROUND", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80), Brand: "Badia"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		products, err := store.Catalog("SYSCO")
		if err != nil {
			t.Fatalf("Catalog: %v", err)
		}
		if products[0].Normalized.Brand != "BADIA" {
			t.Errorf("Normalized.Brand = %q, want BADIA", products[0].Normalized.Brand)
		}
	})

	t.Run("reimport replaces the catalog wholesale", func(t *testing.T) {
		importer, store := newImportFixture(t)
		rows := []domain.VendorRow{
			{ItemCode: "S-1", Description: "PEPPER BLACK", PackSize: "25 LB", CasePrice: decimal.NewFromInt(80)},
			{ItemCode: "S-2", Description: "FLOUR ALL PURPOSE", PackSize: "50 LB", CasePrice: decimal.NewFromInt(20)},
		}
		if _, err := importer.ImportCatalog("SYSCO", rows); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := importer.ImportCatalog("SYSCO", rows[:1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		products, err := store.Catalog("SYSCO")
		if err != nil {
			t.Fatalf("Catalog: %v", err)
		}
		if len(products) != 1 {
			t.Errorf("len(products) = %d, want 1 after wholesale replace", len(products))
		}
	})

	t.Run("missing vendor name is rejected", func(t *testing.T) {
		importer, _ := newImportFixture(t)
		_, err := importer.ImportCatalog("", nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}
