package domain

import "github.com/shopspring/decimal"

// PackSize is the canonical reading of a vendor pack-size string such
// as "1/6/LB", "3/6LB" or "6/#10". When Parsed is false none of the
// quantity fields are meaningful and the pack must be treated as
// incomparable; defaulting an unparsed pack to 1 would corrupt every
// downstream price-per-unit comparison.
type PackSize struct {
	Raw             string          `json:"raw"`
	Containers      int             `json:"containers"`
	QtyPerContainer decimal.Decimal `json:"qtyPerContainer"`
	Unit            Unit            `json:"unit"`
	TotalQty        decimal.Decimal `json:"totalQty"`
	Parsed          bool            `json:"parsed"`
}

// UnparsedPack records a pack-size string that matched no known notation.
func UnparsedPack(raw string) PackSize {
	return PackSize{Raw: raw}
}

// Domain returns the measurement family of the parsed unit.
func (p PackSize) Domain() (UnitDomain, bool) {
	if !p.Parsed {
		return "", false
	}
	return p.Unit.Domain()
}

// Comparable reports whether the pack can back a price-per-unit figure:
// it parsed and holds a positive total quantity. A zero total parses
// successfully (a free sample is a valid degenerate case) but yields no
// per-unit price.
func (p PackSize) Comparable() bool {
	return p.Parsed && p.TotalQty.IsPositive()
}
