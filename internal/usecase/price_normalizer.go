package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// PriceNormalizer turns a parsed pack size and a case price into a
// price per unit. An unparseable or zero-quantity pack is an error,
// never a zero price: zero would falsely imply a free product.
type PriceNormalizer struct {
	converter *UnitConverter
}

// NewPriceNormalizer creates a price normalizer on top of a unit converter.
func NewPriceNormalizer(converter *UnitConverter) *PriceNormalizer {
	return &PriceNormalizer{converter: converter}
}

// PricePerUnit computes casePrice divided by the pack's total quantity
// expressed in targetUnit. The target must share the pack's domain;
// cross-domain price normalization is refused rather than guessed.
func (n *PriceNormalizer) PricePerUnit(pack domain.PackSize, casePrice decimal.Decimal, targetUnit domain.Unit) (decimal.Decimal, error) {
	if !pack.Parsed {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnparseablePackSize, pack.Raw)
	}
	if !pack.TotalQty.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrZeroQuantity, pack.Raw)
	}
	if !pack.Unit.SameDomain(targetUnit) {
		return decimal.Zero, fmt.Errorf("%w: pack is %s, target is %s", domain.ErrIncompatibleUnits, pack.Unit, targetUnit)
	}

	conv, err := n.converter.Convert(pack.TotalQty, pack.Unit, targetUnit, "")
	if err != nil {
		return decimal.Zero, err
	}
	return casePrice.Div(conv.Value), nil
}

// PricePerBase computes the price per domain base unit (G, ML or EACH),
// the figure vendor catalogs are compared on.
func (n *PriceNormalizer) PricePerBase(pack domain.PackSize, casePrice decimal.Decimal) (decimal.Decimal, domain.Unit, error) {
	if !pack.Parsed {
		return decimal.Zero, "", fmt.Errorf("%w: %q", domain.ErrUnparseablePackSize, pack.Raw)
	}
	if !pack.TotalQty.IsPositive() {
		return decimal.Zero, "", fmt.Errorf("%w: %q", domain.ErrZeroQuantity, pack.Raw)
	}

	total, base, err := n.converter.ToBase(pack.TotalQty, pack.Unit)
	if err != nil {
		return decimal.Zero, "", err
	}
	return casePrice.Div(total), base, nil
}
