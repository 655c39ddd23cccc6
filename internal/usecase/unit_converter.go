package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// Conversion factors to each domain's base unit. All arithmetic stays in
// decimal: chained conversions over thousands of catalog rows accumulate
// visible error under binary floats.
var weightToGrams = map[domain.Unit]decimal.Decimal{
	domain.Gram:     decimal.NewFromInt(1),
	domain.Kilogram: decimal.NewFromInt(1000),
	domain.Ounce:    decimal.RequireFromString("28.349523125"),
	domain.Pound:    decimal.RequireFromString("453.59237"),
}

var volumeToMilliliters = map[domain.Unit]decimal.Decimal{
	domain.Milliliter: decimal.NewFromInt(1),
	domain.Liter:      decimal.NewFromInt(1000),
	domain.Teaspoon:   decimal.RequireFromString("4.92892159375"),
	domain.Tablespoon: decimal.RequireFromString("14.78676478125"),
	domain.FluidOunce: decimal.RequireFromString("29.5735295625"),
	domain.Cup:        decimal.RequireFromString("236.5882365"),
	domain.Pint:       decimal.RequireFromString("473.176473"),
	domain.Quart:      decimal.RequireFromString("946.352946"),
	domain.Gallon:     decimal.RequireFromString("3785.411784"),
}

var countToEach = map[domain.Unit]decimal.Decimal{
	domain.Each:  decimal.NewFromInt(1),
	domain.Dozen: decimal.NewFromInt(12),
}

// defaultDensities holds grams-per-milliliter for common kitchen
// ingredients, keyed by a lowercase fragment matched against the
// ingredient name.
var defaultDensities = map[string]decimal.Decimal{
	"water":          decimal.RequireFromString("1.0"),
	"milk":           decimal.RequireFromString("1.03"),
	"cream":          decimal.RequireFromString("0.994"),
	"flour":          decimal.RequireFromString("0.53"),
	"sugar":          decimal.RequireFromString("0.85"),
	"brown sugar":    decimal.RequireFromString("0.81"),
	"powdered sugar": decimal.RequireFromString("0.56"),
	"butter":         decimal.RequireFromString("0.911"),
	"oil":            decimal.RequireFromString("0.92"),
	"olive oil":      decimal.RequireFromString("0.918"),
	"honey":          decimal.RequireFromString("1.42"),
	"syrup":          decimal.RequireFromString("1.37"),
	"salt":           decimal.RequireFromString("1.217"),
	"rice":           decimal.RequireFromString("0.85"),
	"ketchup":        decimal.RequireFromString("1.14"),
	"mayonnaise":     decimal.RequireFromString("0.91"),
	"vinegar":        decimal.RequireFromString("1.01"),
	"stock":          decimal.RequireFromString("1.0"),
	"broth":          decimal.RequireFromString("1.0"),
	"tomato paste":   decimal.RequireFromString("1.07"),
	"molasses":       decimal.RequireFromString("1.4"),
	"cornstarch":     decimal.RequireFromString("0.64"),
	"cocoa":          decimal.RequireFromString("0.52"),
	"yeast":          decimal.RequireFromString("0.95"),
	"pepper":         decimal.RequireFromString("0.51"),
}

var waterDensity = decimal.RequireFromString("1.0")

// Conversion carries a converted value plus how it was obtained. When
// the density was approximated with water the caller must surface
// Warning: the approximation can silently introduce a ~2x error for
// ingredients like flour.
type Conversion struct {
	Value        decimal.Decimal
	From         domain.Unit
	To           domain.Unit
	Density      decimal.Decimal
	Approximated bool
	Warning      string
}

// UnitConverter converts between compatible units, pivoting through
// grams and milliliters, and across the weight/volume boundary when an
// ingredient density is known.
type UnitConverter struct {
	densities map[string]decimal.Decimal
}

// NewUnitConverter creates a converter with the built-in density table.
func NewUnitConverter() *UnitConverter {
	densities := make(map[string]decimal.Decimal, len(defaultDensities))
	for k, v := range defaultDensities {
		densities[k] = v
	}
	return &UnitConverter{densities: densities}
}

// AddDensity registers or overrides a density (g/ml) for an ingredient
// name fragment.
func (c *UnitConverter) AddDensity(name string, gramsPerML decimal.Decimal) {
	c.densities[strings.ToLower(strings.TrimSpace(name))] = gramsPerML
}

// Convert converts value from one unit to another. ingredientName is
// only consulted for weight/volume crossings, where it drives the
// density lookup. Count never cross-converts with weight or volume.
func (c *UnitConverter) Convert(value decimal.Decimal, from, to domain.Unit, ingredientName string) (Conversion, error) {
	fromDomain, ok := from.Domain()
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, from)
	}
	toDomain, ok := to.Domain()
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, to)
	}

	conv := Conversion{From: from, To: to}

	if fromDomain == toDomain {
		factors := domainFactors(fromDomain)
		conv.Value = value.Mul(factors[from]).Div(factors[to])
		return conv, nil
	}

	crossesWeightVolume := (fromDomain == domain.DomainWeight && toDomain == domain.DomainVolume) ||
		(fromDomain == domain.DomainVolume && toDomain == domain.DomainWeight)
	if !crossesWeightVolume {
		return Conversion{}, fmt.Errorf("%w: cannot convert %s to %s", domain.ErrIncompatibleUnits, fromDomain, toDomain)
	}

	density, found := c.lookupDensity(ingredientName)
	conv.Density = density
	if !found {
		conv.Approximated = true
		conv.Warning = fmt.Sprintf("missing density for %q: approximated with water (1.000 g/ml)", ingredientName)
	}

	if fromDomain == domain.DomainWeight {
		grams := value.Mul(weightToGrams[from])
		conv.Value = grams.Div(density).Div(volumeToMilliliters[to])
	} else {
		milliliters := value.Mul(volumeToMilliliters[from])
		conv.Value = milliliters.Mul(density).Div(weightToGrams[to])
	}
	return conv, nil
}

// ToBase converts a value into its domain base unit (G, ML or EACH).
func (c *UnitConverter) ToBase(value decimal.Decimal, unit domain.Unit) (decimal.Decimal, domain.Unit, error) {
	d, ok := unit.Domain()
	if !ok {
		return decimal.Zero, "", fmt.Errorf("%w: %q", domain.ErrUnknownUnit, unit)
	}
	factors := domainFactors(d)
	return value.Mul(factors[unit]), BaseUnit(d), nil
}

// BaseUnit returns the canonical pivot unit for a domain.
func BaseUnit(d domain.UnitDomain) domain.Unit {
	switch d {
	case domain.DomainWeight:
		return domain.Gram
	case domain.DomainVolume:
		return domain.Milliliter
	default:
		return domain.Each
	}
}

func domainFactors(d domain.UnitDomain) map[domain.Unit]decimal.Decimal {
	switch d {
	case domain.DomainWeight:
		return weightToGrams
	case domain.DomainVolume:
		return volumeToMilliliters
	default:
		return countToEach
	}
}

// lookupDensity resolves an ingredient density by exact name, then by
// the longest fragment contained in the name. Unknown ingredients fall
// back to water.
func (c *UnitConverter) lookupDensity(ingredientName string) (decimal.Decimal, bool) {
	name := strings.ToLower(strings.TrimSpace(ingredientName))
	if name == "" {
		return waterDensity, false
	}
	if d, ok := c.densities[name]; ok {
		return d, true
	}

	bestLen := 0
	var best decimal.Decimal
	for fragment, d := range c.densities {
		if strings.Contains(name, fragment) && len(fragment) > bestLen {
			bestLen = len(fragment)
			best = d
		}
	}
	if bestLen > 0 {
		return best, true
	}
	return waterDensity, false
}
