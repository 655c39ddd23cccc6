package domain

import "strings"

// UnitDomain classifies units into the three measurement families.
// Cross-domain conversion is only possible between weight and volume,
// and only with a known ingredient density.
type UnitDomain string

const (
	DomainWeight UnitDomain = "weight"
	DomainVolume UnitDomain = "volume"
	DomainCount  UnitDomain = "count"
)

// Unit is a canonical measurement unit. Packaging pseudo-units (CAN,
// CASE, BOX) never appear here; they resolve to a concrete domain
// during pack-size parsing.
type Unit string

const (
	// Weight
	Gram     Unit = "G"
	Kilogram Unit = "KG"
	Ounce    Unit = "OZ"
	Pound    Unit = "LB"

	// Volume
	Milliliter Unit = "ML"
	Liter      Unit = "L"
	Teaspoon   Unit = "TSP"
	Tablespoon Unit = "TBSP"
	FluidOunce Unit = "FLOZ"
	Cup        Unit = "CUP"
	Pint       Unit = "PINT"
	Quart      Unit = "QUART"
	Gallon     Unit = "GALLON"

	// Count
	Each  Unit = "EACH"
	Dozen Unit = "DOZEN"
)

var unitDomains = map[Unit]UnitDomain{
	Gram:     DomainWeight,
	Kilogram: DomainWeight,
	Ounce:    DomainWeight,
	Pound:    DomainWeight,

	Milliliter: DomainVolume,
	Liter:      DomainVolume,
	Teaspoon:   DomainVolume,
	Tablespoon: DomainVolume,
	FluidOunce: DomainVolume,
	Cup:        DomainVolume,
	Pint:       DomainVolume,
	Quart:      DomainVolume,
	Gallon:     DomainVolume,

	Each:  DomainCount,
	Dozen: DomainCount,
}

// unitAliases maps the unit spellings seen on vendor price sheets to
// canonical units. "#" is distributor shorthand for pounds.
var unitAliases = map[string]Unit{
	"G":       Gram,
	"GM":      Gram,
	"GR":      Gram,
	"GRAM":    Gram,
	"GRAMS":   Gram,
	"KG":      Kilogram,
	"KILO":    Kilogram,
	"OZ":      Ounce,
	"OUNCE":   Ounce,
	"OUNCES":  Ounce,
	"LB":      Pound,
	"LBS":     Pound,
	"POUND":   Pound,
	"POUNDS":  Pound,
	"#":       Pound,
	"ML":      Milliliter,
	"L":       Liter,
	"LT":      Liter,
	"LTR":     Liter,
	"LITER":   Liter,
	"LITERS":  Liter,
	"TSP":     Teaspoon,
	"TBSP":    Tablespoon,
	"FLOZ":    FluidOunce,
	"FL OZ":   FluidOunce,
	"CUP":     Cup,
	"CUPS":    Cup,
	"PT":      Pint,
	"PINT":    Pint,
	"PINTS":   Pint,
	"QT":      Quart,
	"QUART":   Quart,
	"QUARTS":  Quart,
	"GAL":     Gallon,
	"GALLON":  Gallon,
	"GALLONS": Gallon,
	"EA":      Each,
	"EACH":    Each,
	"DZ":      Dozen,
	"DOZ":     Dozen,
	"DOZEN":   Dozen,
}

// Domain returns the measurement family a unit belongs to.
func (u Unit) Domain() (UnitDomain, bool) {
	d, ok := unitDomains[u]
	return d, ok
}

// SameDomain reports whether two units can be converted without a density.
func (u Unit) SameDomain(other Unit) bool {
	d1, ok1 := u.Domain()
	d2, ok2 := other.Domain()
	return ok1 && ok2 && d1 == d2
}

// ParseUnit resolves a vendor unit token to a canonical unit.
func ParseUnit(token string) (Unit, bool) {
	u, ok := unitAliases[strings.ToUpper(strings.TrimSpace(token))]
	return u, ok
}
