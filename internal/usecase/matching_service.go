package usecase

import (
	"strings"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

// Signal weights. With the maximum brand bonus they sum to 1.0; totals
// are clamped to [0, 1].
const (
	weightName     = 0.4
	weightSpec     = 0.3
	weightUnit     = 0.1
	brandBothEqual = 0.2
	brandBothDiff  = -0.05
	brandNeither   = 0.1

	// Name similarity blends bigram overlap of the joined strings with
	// token-set overlap, weighted the way the Dice-based header scorers
	// used on catalog imports weight them.
	diceShare    = 0.65
	jaccardShare = 0.35
)

// MatchConfig holds thresholds for the matching service.
type MatchConfig struct {
	MinConfidence   float64
	HighThreshold   float64
	MediumThreshold float64
	LowThreshold    float64
}

// MatchScore is the decomposed outcome of scoring a product pair.
type MatchScore struct {
	Total          float64
	NameSimilarity float64
	BrandSignal    float64
	SpecAgreement  float64
	UnitBonus      float64

	// SpecConflict is set when any populated specification category
	// disagrees outright (Fine vs. Coarse pepper). A conflicted pair can
	// never classify HIGH regardless of how alike the names are.
	SpecConflict bool
}

// MatchingService scores two normalized vendor products for identity
// confidence.
type MatchingService struct {
	minConfidence   float64
	highThreshold   float64
	mediumThreshold float64
	lowThreshold    float64
}

// NewMatchingService creates a matching service, filling in default
// thresholds for any left at zero.
func NewMatchingService(config MatchConfig) *MatchingService {
	s := &MatchingService{
		minConfidence:   config.MinConfidence,
		highThreshold:   config.HighThreshold,
		mediumThreshold: config.MediumThreshold,
		lowThreshold:    config.LowThreshold,
	}
	if s.minConfidence <= 0 {
		s.minConfidence = 0.6
	}
	if s.highThreshold <= 0 {
		s.highThreshold = 0.85
	}
	if s.mediumThreshold <= 0 {
		s.mediumThreshold = 0.65
	}
	if s.lowThreshold <= 0 {
		s.lowThreshold = 0.3
	}
	return s
}

// MinConfidence returns the threshold below which a pair stays unmatched.
func (s *MatchingService) MinConfidence() float64 {
	return s.minConfidence
}

// Score computes the identity confidence for a product pair.
func (s *MatchingService) Score(a, b domain.VendorProduct) MatchScore {
	score := MatchScore{
		NameSimilarity: nameSimilarity(a.Normalized.Tokens, b.Normalized.Tokens),
		BrandSignal:    brandSignal(a.Normalized.Brand, b.Normalized.Brand),
	}
	score.SpecAgreement, score.SpecConflict = specAgreement(a.Normalized.Specs, b.Normalized.Specs)

	domA, okA := a.Pack.Domain()
	domB, okB := b.Pack.Domain()
	if okA && okB && domA == domB {
		score.UnitBonus = weightUnit
	}

	total := weightName*score.NameSimilarity +
		score.BrandSignal +
		weightSpec*score.SpecAgreement +
		score.UnitBonus

	// A specification conflict marks a non-substitutable variant; cap it
	// out of HIGH so it is never silently treated as the same purchasable
	// item.
	if score.SpecConflict && total > s.mediumThreshold {
		total = s.mediumThreshold
	}

	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}
	score.Total = total
	return score
}

// Classify maps a score to a confidence band.
func (s *MatchingService) Classify(score MatchScore) domain.MatchConfidence {
	switch {
	case score.Total >= s.highThreshold && !score.SpecConflict:
		return domain.ConfidenceHigh
	case score.Total >= s.mediumThreshold:
		return domain.ConfidenceMedium
	case score.Total >= s.lowThreshold:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceUnmatched
	}
}

// nameSimilarity blends the Dice bigram coefficient of the joined token
// strings with Jaccard overlap of the token sets.
func nameSimilarity(tokensA, tokensB []string) float64 {
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	joinedA := strings.Join(tokensA, " ")
	joinedB := strings.Join(tokensB, " ")
	return diceShare*diceCoefficient(joinedA, joinedB) + jaccardShare*jaccard(tokensA, tokensB)
}

// jaccard computes |intersection| / |union| over two token slices.
func jaccard(tokensA, tokensB []string) float64 {
	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}
	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// diceCoefficient computes bigram overlap between two strings.
func diceCoefficient(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	bigramsA := make(map[string]int)
	for i := 0; i+2 <= len(a); i++ {
		bigramsA[a[i:i+2]]++
	}
	overlap := 0
	for i := 0; i+2 <= len(b); i++ {
		bigram := b[i : i+2]
		if bigramsA[bigram] > 0 {
			bigramsA[bigram]--
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(a)-1+len(b)-1)
}

// brandSignal scores brand agreement: both present and equal is strong
// evidence, both present and different is weak counter-evidence, both
// absent is mildly positive, one-sided is neutral.
func brandSignal(brandA, brandB string) float64 {
	switch {
	case brandA != "" && brandB != "":
		if brandA == brandB {
			return brandBothEqual
		}
		return brandBothDiff
	case brandA == "" && brandB == "":
		return brandNeither
	default:
		return 0
	}
}

// specAgreement scores the specification categories. Only categories
// populated on at least one side count; a category empty on both sides
// is vacuous agreement. Full credit for identical sets, half for
// partial overlap, zero otherwise. Returns the mean credit and whether
// any populated category disagreed outright (keywords on both sides
// with no overlap). One-sided keywords earn no credit but are not a
// conflict.
func specAgreement(specsA, specsB map[domain.SpecCategory][]string) (float64, bool) {
	populated := 0
	credit := 0.0
	conflict := false

	for _, category := range domain.SpecCategories {
		setA := toSet(specsA[category])
		setB := toSet(specsB[category])
		if len(setA) == 0 && len(setB) == 0 {
			continue
		}
		populated++

		overlap := 0
		for k := range setA {
			if setB[k] {
				overlap++
			}
		}
		switch {
		case overlap == len(setA) && overlap == len(setB):
			credit += 1.0
		case overlap > 0:
			credit += 0.5
		default:
			if len(setA) > 0 && len(setB) > 0 {
				conflict = true
			}
		}
	}

	if populated == 0 {
		return 1.0, false
	}
	return credit / float64(populated), conflict
}

func toSet(words []string) map[string]bool {
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
