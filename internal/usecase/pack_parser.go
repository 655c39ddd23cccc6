package usecase

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// Package-level compiled regex patterns, tried in priority order.
// First match wins; distributors are inconsistent enough that order matters
// ("6/#10" must not be read as six packs of ten).
var (
	// "1/6/LB" - containers/quantity/UNIT
	slashUnitPattern = regexp.MustCompile(`^(\d+)/(\d+(?:\.\d+)?)/([A-Z#]+)$`)

	// "3/6LB", "6/5#", "4/1 GAL" - containers/quantityUNIT
	compactUnitPattern = regexp.MustCompile(`^(\d+)/(\d+(?:\.\d+)?)\s*([A-Z]+|#)$`)

	// "6/#10" - containers/can-size shorthand
	canSizePattern = regexp.MustCompile(`^(\d+)/#(\d+(?:\.\d+)?)$`)

	// "25 LB", "750ML" - bare quantity with a weight or volume unit
	bareQtyPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Z#]+)$`)

	// "24 CT", "12 EA", "6 PK" - bare count
	bareCountPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(EA|EACH|CT|COUNT|CS|CASE|PK|PACK|DZ|DOZ|DOZEN)$`)

	packWhitespace = regexp.MustCompile(`\s+`)
)

// canSizeOunces resolves trade can numbers to their weight in ounces.
// A "#10" can holds 109 oz regardless of what is inside it.
var canSizeOunces = map[string]decimal.Decimal{
	"10":  decimal.NewFromInt(109),
	"5":   decimal.NewFromInt(56),
	"3":   decimal.NewFromInt(46),
	"2.5": decimal.NewFromInt(28),
	"2":   decimal.NewFromInt(20),
	"303": decimal.NewFromInt(16),
	"300": decimal.NewFromInt(14),
	"1":   decimal.NewFromFloat(10.5),
}

// countTokens are pack-size tokens that resolve to the count domain.
var countTokens = map[string]domain.Unit{
	"EA":    domain.Each,
	"EACH":  domain.Each,
	"CT":    domain.Each,
	"COUNT": domain.Each,
	"CS":    domain.Each,
	"CASE":  domain.Each,
	"PK":    domain.Each,
	"PACK":  domain.Each,
	"DZ":    domain.Dozen,
	"DOZ":   domain.Dozen,
	"DOZEN": domain.Dozen,
}

// PackSizeParser turns vendor pack-size notation into a canonical
// PackSize. Unmatched input parses to an incomparable PackSize, never
// to a guessed quantity.
type PackSizeParser struct{}

// NewPackSizeParser creates a pack-size parser.
func NewPackSizeParser() *PackSizeParser {
	return &PackSizeParser{}
}

// Parse reads a vendor pack-size string. Zero containers or quantity
// parse successfully with a zero total (a free sample is valid); an
// unrecognized notation returns Parsed=false.
func (p *PackSizeParser) Parse(raw string) domain.PackSize {
	s := packWhitespace.ReplaceAllString(strings.ToUpper(strings.TrimSpace(raw)), " ")
	if s == "" {
		return domain.UnparsedPack(raw)
	}

	if m := slashUnitPattern.FindStringSubmatch(s); m != nil {
		return buildPack(raw, m[1], m[2], m[3])
	}

	if m := compactUnitPattern.FindStringSubmatch(s); m != nil {
		return buildPack(raw, m[1], m[2], m[3])
	}

	if m := canSizePattern.FindStringSubmatch(s); m != nil {
		oz, ok := canSizeOunces[m[2]]
		if !ok {
			return domain.UnparsedPack(raw)
		}
		containers := mustInt(m[1])
		return domain.PackSize{
			Raw:             raw,
			Containers:      containers,
			QtyPerContainer: oz,
			Unit:            domain.Ounce,
			TotalQty:        oz.Mul(decimal.NewFromInt(int64(containers))),
			Parsed:          true,
		}
	}

	if m := bareCountPattern.FindStringSubmatch(s); m != nil {
		qty, err := decimal.NewFromString(m[1])
		if err != nil {
			return domain.UnparsedPack(raw)
		}
		return domain.PackSize{
			Raw:             raw,
			Containers:      int(qty.IntPart()),
			QtyPerContainer: decimal.NewFromInt(1),
			Unit:            countTokens[m[2]],
			TotalQty:        qty,
			Parsed:          true,
		}
	}

	if m := bareQtyPattern.FindStringSubmatch(s); m != nil {
		unit, ok := domain.ParseUnit(m[2])
		if !ok {
			return domain.UnparsedPack(raw)
		}
		if d, _ := unit.Domain(); d == domain.DomainCount {
			// Bare counts are handled above; anything else count-flavored
			// here ("5 DOZEN EGGS" trimmed badly) is not a pack size.
			return domain.UnparsedPack(raw)
		}
		qty, err := decimal.NewFromString(m[1])
		if err != nil {
			return domain.UnparsedPack(raw)
		}
		return domain.PackSize{
			Raw:             raw,
			Containers:      1,
			QtyPerContainer: qty,
			Unit:            unit,
			TotalQty:        qty,
			Parsed:          true,
		}
	}

	return domain.UnparsedPack(raw)
}

// buildPack assembles a containers/quantity/unit reading. Count units
// collapse to packs-of-packs: "6/12 EA" is 72 sellable units.
func buildPack(raw, containersTok, qtyTok, unitTok string) domain.PackSize {
	unit, ok := domain.ParseUnit(unitTok)
	if !ok {
		if u, isCount := countTokens[unitTok]; isCount {
			unit = u
		} else {
			return domain.UnparsedPack(raw)
		}
	}

	containers := mustInt(containersTok)
	qty, err := decimal.NewFromString(qtyTok)
	if err != nil {
		return domain.UnparsedPack(raw)
	}

	if d, _ := unit.Domain(); d == domain.DomainCount {
		total := qty.Mul(decimal.NewFromInt(int64(containers)))
		return domain.PackSize{
			Raw:             raw,
			Containers:      int(total.IntPart()),
			QtyPerContainer: decimal.NewFromInt(1),
			Unit:            unit,
			TotalQty:        total,
			Parsed:          true,
		}
	}

	return domain.PackSize{
		Raw:             raw,
		Containers:      containers,
		QtyPerContainer: qty,
		Unit:            unit,
		TotalQty:        qty.Mul(decimal.NewFromInt(int64(containers))),
		Parsed:          true,
	}
}

// mustInt parses a digits-only token already vetted by a regex.
func mustInt(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
