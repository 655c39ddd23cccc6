package usecase

import (
	"regexp"
	"strings"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// Package-level compiled regex patterns for description cleanup
var (
	descPunctuationRegex = regexp.MustCompile(`[^A-Z0-9\s]`)
	descMultiSpaceRegex  = regexp.MustCompile(`\s+`)
)

// abbreviations expands the shorthand distributors cram into 30-character
// description fields.
var abbreviations = map[string]string{
	"BNLS":   "BONELESS",
	"SKLS":   "SKINLESS",
	"SKNLS":  "SKINLESS",
	"GRD":    "GROUND",
	"GRND":   "GROUND",
	"PWD":    "POWDER",
	"PWDR":   "POWDER",
	"WHL":    "WHOLE",
	"FRZ":    "FROZEN",
	"FZN":    "FROZEN",
	"FRSH":   "FRESH",
	"CHIX":   "CHICKEN",
	"CHKN":   "CHICKEN",
	"BRST":   "BREAST",
	"CHOC":   "CHOCOLATE",
	"VEG":    "VEGETABLE",
	"GRN":    "GREEN",
	"YLW":    "YELLOW",
	"WHT":    "WHITE",
	"BLK":    "BLACK",
	"PEPR":   "PEPPER",
	"ONN":    "ONION",
	"TOM":    "TOMATO",
	"GRAN":   "GRANULATED",
	"KOSH":   "KOSHER",
	"XVRGN":  "EXTRA VIRGIN",
	"UNSLTD": "UNSALTED",
	"SLTD":   "SALTED",
}

// descriptionStopWords are tokens that say nothing about product
// identity: units, packaging, conjunctions and catalog filler.
var descriptionStopWords = map[string]bool{
	// Units
	"OZ": true, "LB": true, "LBS": true, "G": true, "KG": true, "GAL": true,
	"QT": true, "PT": true, "ML": true, "L": true, "CT": true, "EA": true,
	"EACH": true, "DOZEN": true, "DZ": true, "CUP": true, "TSP": true, "TBSP": true,
	// Packaging
	"CAN": true, "CANS": true, "CASE": true, "BOX": true, "BAG": true,
	"JAR": true, "TUB": true, "PAIL": true, "BOTTLE": true, "CARTON": true,
	"POUCH": true, "PACK": true, "PK": true, "CS": true, "SLEEVE": true,
	// Conjunctions and filler
	"AND": true, "OR": true, "OF": true, "THE": true, "WITH": true,
	"IN": true, "PER": true, "A": true, "AN": true,
	"NEW": true, "VALUE": true, "SELECT": true, "ITEM": true, "PRODUCT": true,
}

// knownBrands is the maintained brand list. Multi-word brands come
// first so detection can run before stop-word removal fragments them.
var knownBrands = []string{
	"GOLD MEDAL",
	"SPICE ISLANDS",
	"LAND O LAKES",
	"SWEET BABY RAYS",
	"SYSCO IMPERIAL",
	"SYSCO CLASSIC",
	"SYSCO",
	"SHAMROCK",
	"MCCORMICK",
	"MONARCH",
	"HEINZ",
	"KRAFT",
	"TYSON",
	"HORMEL",
	"DOMINO",
	"MORTON",
	"KIKKOMAN",
	"TABASCO",
	"FRENCHS",
	"HELLMANNS",
	"LAWRYS",
	"BADIA",
	"GHIRARDELLI",
	"BARILLA",
}

// specKeywords bucket the words that decide whether two similarly-named
// products are actually interchangeable. A different grind of pepper is
// not a substitute for another, however alike the names look.
var specKeywords = map[domain.SpecCategory]map[string]bool{
	domain.SpecGrind: {
		"FINE": true, "COARSE": true, "GROUND": true, "CRACKED": true,
		"WHOLE": true, "RESTAURANT": true,
	},
	domain.SpecCut: {
		"DICED": true, "SLICED": true, "CHOPPED": true, "MINCED": true,
		"CRUSHED": true, "JULIENNE": true, "SHREDDED": true, "CUBED": true,
		"STRIPS": true,
	},
	domain.SpecForm: {
		"FRESH": true, "FROZEN": true, "DRIED": true, "CANNED": true,
		"POWDER": true, "GRANULATED": true, "PASTE": true, "PUREE": true,
		"LIQUID": true, "CONCENTRATE": true,
	},
	domain.SpecQuality: {
		"CHOICE": true, "PRIME": true, "FANCY": true, "PREMIUM": true,
		"ORGANIC": true, "IMPORTED": true, "EXTRA": true, "VIRGIN": true,
	},
}

// ProductNormalizer cleans free-text vendor descriptions into
// comparable token sets with brand and specification keywords split out.
type ProductNormalizer struct{}

// NewProductNormalizer creates a product normalizer.
func NewProductNormalizer() *ProductNormalizer {
	return &ProductNormalizer{}
}

// Normalize runs the cleanup pipeline: uppercase, punctuation to
// spaces, abbreviation expansion, brand detection, stop-word removal,
// specification-keyword extraction. Brand detection happens before
// stop-word removal so multi-word brands are not fragmented.
func (n *ProductNormalizer) Normalize(description string) domain.NormalizedProduct {
	cleaned := strings.ToUpper(strings.TrimSpace(description))
	cleaned = descPunctuationRegex.ReplaceAllString(cleaned, " ")
	cleaned = descMultiSpaceRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return domain.NormalizedProduct{}
	}

	cleaned = expandAbbreviations(cleaned)

	brand, cleaned := extractBrand(cleaned)

	var tokens []string
	seen := make(map[string]bool)
	specs := make(map[domain.SpecCategory][]string)
	for _, word := range strings.Fields(cleaned) {
		if descriptionStopWords[word] || isDigits(word) || seen[word] {
			continue
		}
		seen[word] = true
		tokens = append(tokens, word)

		for _, category := range domain.SpecCategories {
			if specKeywords[category][word] {
				specs[category] = append(specs[category], word)
			}
		}
	}

	if len(specs) == 0 {
		specs = nil
	}
	return domain.NormalizedProduct{Tokens: tokens, Brand: brand, Specs: specs}
}

// expandAbbreviations rewrites each shorthand token to its full form.
func expandAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if full, ok := abbreviations[word]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

// extractBrand finds the first known brand in the description and
// removes it from the token stream; the matcher scores brand agreement
// as its own signal.
func extractBrand(s string) (string, string) {
	padded := " " + s + " "
	for _, brand := range knownBrands {
		needle := " " + brand + " "
		if idx := strings.Index(padded, needle); idx >= 0 {
			remain := padded[:idx] + " " + padded[idx+len(needle):]
			remain = descMultiSpaceRegex.ReplaceAllString(remain, " ")
			return brand, strings.TrimSpace(remain)
		}
	}
	return "", s
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
