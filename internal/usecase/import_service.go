package usecase

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// ImportService turns already-extracted price-sheet rows into an
// immutable vendor catalog. A re-import replaces the catalog wholesale;
// malformed rows degrade to uncomparable entries instead of aborting
// the batch.
type ImportService struct {
	parser     *PackSizeParser
	normalizer *ProductNormalizer
	prices     *PriceNormalizer
	catalogs   domain.CatalogRepository
	logger     *zap.Logger
}

// NewImportService wires an import service. logger may be nil.
func NewImportService(
	parser *PackSizeParser,
	normalizer *ProductNormalizer,
	prices *PriceNormalizer,
	catalogs domain.CatalogRepository,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		parser:     parser,
		normalizer: normalizer,
		prices:     prices,
		catalogs:   catalogs,
		logger:     logger,
	}
}

// ImportCatalog parses, normalizes and prices every row, then replaces
// the vendor's catalog with the result.
func (s *ImportService) ImportCatalog(vendor string, rows []domain.VendorRow) (domain.ImportReport, error) {
	if vendor == "" {
		return domain.ImportReport{}, fmt.Errorf("%w: vendor name is required", domain.ErrInvalidRequest)
	}

	report := domain.ImportReport{Vendor: vendor}
	products := make([]domain.VendorProduct, 0, len(rows))

	for i, row := range rows {
		if row.Description == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("row %d: empty description, skipped", i+1))
			continue
		}

		normalized := s.normalizer.Normalize(row.Description)
		brand := row.Brand
		if brand == "" {
			brand = normalized.Brand
		} else if normalized.Brand == "" {
			// An explicit brand column feeds the matcher's brand signal
			// even when the description itself never names the brand.
			normalized.Brand = strings.ToUpper(strings.TrimSpace(brand))
		}

		product := domain.VendorProduct{
			Vendor:      vendor,
			ItemCode:    row.ItemCode,
			Description: row.Description,
			Normalized:  normalized,
			Brand:       brand,
			Pack:        s.parser.Parse(row.PackSize),
			CasePrice:   row.CasePrice,
			Category:    row.Category,
		}

		if pricePerBase, _, err := s.prices.PricePerBase(product.Pack, row.CasePrice); err == nil {
			product.PricePerBase = pricePerBase
			product.Comparable = true
		} else {
			report.Unparseable++
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("row %d (%s): %v; excluded from price comparison", i+1, row.ItemCode, err))
		}

		products = append(products, product)
		report.Imported++
	}

	s.catalogs.ReplaceCatalog(vendor, products)
	s.logger.Info("vendor catalog replaced",
		zap.String("vendor", vendor),
		zap.Int("imported", report.Imported),
		zap.Int("unparseable", report.Unparseable),
	)
	return report, nil
}
