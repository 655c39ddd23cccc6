package domain

import "github.com/shopspring/decimal"

// VendorRow is one already-extracted tabular row from a distributor
// price sheet. File reading and OCR happen upstream; the engine only
// ever sees rows in this shape.
type VendorRow struct {
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description" binding:"required"`
	PackSize    string          `json:"packSize"`
	CasePrice   decimal.Decimal `json:"casePrice"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
}

// SpecCategory groups the keywords that decide whether two
// similarly-named products are truly interchangeable.
type SpecCategory string

const (
	SpecGrind   SpecCategory = "grind"
	SpecCut     SpecCategory = "cut"
	SpecForm    SpecCategory = "form"
	SpecQuality SpecCategory = "quality"
)

// SpecCategories lists all specification categories in a fixed order.
var SpecCategories = []SpecCategory{SpecGrind, SpecCut, SpecForm, SpecQuality}

// NormalizedProduct is the comparable form of a free-text description:
// cleaned tokens, an extracted brand, and specification keywords bucketed
// by category.
type NormalizedProduct struct {
	Tokens []string                  `json:"tokens"`
	Brand  string                    `json:"brand,omitempty"`
	Specs  map[SpecCategory][]string `json:"specs,omitempty"`
}

// VendorProduct is one line item of a vendor catalog. Rows are immutable
// per import batch; a re-import replaces the whole catalog.
type VendorProduct struct {
	Vendor      string            `json:"vendor"`
	ItemCode    string            `json:"itemCode"`
	Description string            `json:"description"`
	Normalized  NormalizedProduct `json:"normalized"`
	Brand       string            `json:"brand,omitempty"`
	Pack        PackSize          `json:"pack"`
	CasePrice   decimal.Decimal   `json:"casePrice"`
	Category    string            `json:"category,omitempty"`

	// PricePerBase is the case price divided by the pack's total quantity
	// expressed in the domain base unit (G, ML or EACH). Valid only when
	// Comparable is true; it is never coerced to zero.
	PricePerBase decimal.Decimal `json:"pricePerBase"`
	Comparable   bool            `json:"comparable"`
}

// MatchConfidence classifies a match score.
type MatchConfidence string

const (
	ConfidenceHigh      MatchConfidence = "HIGH"
	ConfidenceMedium    MatchConfidence = "MEDIUM"
	ConfidenceLow       MatchConfidence = "LOW"
	ConfidenceUnmatched MatchConfidence = "UNMATCHED"
)

// ProductMatch pairs one product from each of two vendor catalogs with
// an identity confidence and, when both packs resolve to the same unit
// domain, a price comparison.
type ProductMatch struct {
	A          VendorProduct   `json:"a"`
	B          VendorProduct   `json:"b"`
	Score      float64         `json:"score"`
	Confidence MatchConfidence `json:"confidence"`

	// SpecAgreement is the specification subscore in [0,1] before weighting.
	SpecAgreement float64 `json:"specAgreement"`

	// PriceComparable is false for cross-domain pairs, which may match on
	// identity but are never used for price comparison.
	PriceComparable   bool            `json:"priceComparable"`
	PriceDiffPerBase  decimal.Decimal `json:"priceDiffPerBase,omitempty"`
	SavingsPercent    decimal.Decimal `json:"savingsPercent,omitempty"`
	RecommendedVendor string          `json:"recommendedVendor,omitempty"`

	// Verified marks a manually confirmed match; regenerated passes never
	// overwrite it.
	Verified bool `json:"verified"`
}

// ComparisonReport is the outcome of a full matching pass between two
// vendor catalogs.
type ComparisonReport struct {
	VendorA    string          `json:"vendorA"`
	VendorB    string          `json:"vendorB"`
	Matches    []ProductMatch  `json:"matches"`
	OnlyA      []VendorProduct `json:"onlyA"`
	OnlyB      []VendorProduct `json:"onlyB"`
	TotalPairs int             `json:"totalPairs"`
}

// ImportReport summarizes a wholesale catalog import.
type ImportReport struct {
	Vendor      string   `json:"vendor"`
	Imported    int      `json:"imported"`
	Unparseable int      `json:"unparseable"`
	Warnings    []string `json:"warnings,omitempty"`
}
