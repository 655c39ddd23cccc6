package usecase

import (
	"testing"

	"github.com/sburdges-eng/lariat-bible-sub000/internal/domain"
)

func TestNewMatchingService(t *testing.T) {
	t.Run("keeps provided thresholds", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{
			MinConfidence:   0.5,
			HighThreshold:   0.9,
			MediumThreshold: 0.7,
			LowThreshold:    0.4,
		})
		if svc.minConfidence != 0.5 {
			t.Errorf("minConfidence = %v, want 0.5", svc.minConfidence)
		}
		if svc.highThreshold != 0.9 {
			t.Errorf("highThreshold = %v, want 0.9", svc.highThreshold)
		}
	})

	t.Run("fills defaults for zero thresholds", func(t *testing.T) {
		svc := NewMatchingService(MatchConfig{})
		if svc.minConfidence != 0.6 {
			t.Errorf("minConfidence = %v, want 0.6 (default)", svc.minConfidence)
		}
		if svc.highThreshold != 0.85 {
			t.Errorf("highThreshold = %v, want 0.85 (default)", svc.highThreshold)
		}
		if svc.mediumThreshold != 0.65 {
			t.Errorf("mediumThreshold = %v, want 0.65 (default)", svc.mediumThreshold)
		}
		if svc.lowThreshold != 0.3 {
			t.Errorf("lowThreshold = %v, want 0.3 (default)", svc.lowThreshold)
		}
	})
}

// product builds a VendorProduct the way the import pipeline would, so
// scoring tests exercise the same normalization the service sees live.
func product(t *testing.T, vendor, description, packSize string) domain.VendorProduct {
	t.Helper()
	parser := NewPackSizeParser()
	normalizer := NewProductNormalizer()
	return domain.VendorProduct{
		Vendor:      vendor,
		Description: description,
		Pack:        parser.Parse(packSize),
		Normalized:  normalizer.Normalize(description),
	}
}

func TestScore(t *testing.T) {
	svc := NewMatchingService(MatchConfig{})

	t.Run("identical products score high", func(t *testing.T) {
		a := product(t, "SYSCO", "PEPPER BLACK GROUND", "6/1LB")
		b := product(t, "SHAMROCK", "PEPPER BLACK GROUND", "25 LB")
		score := svc.Score(a, b)
		if score.Total < 0.85 {
			t.Errorf("Total = %v, want >= 0.85", score.Total)
		}
		if svc.Classify(score) != domain.ConfidenceHigh {
			t.Errorf("Classify = %v, want HIGH", svc.Classify(score))
		}
	})

	t.Run("unrelated products score low", func(t *testing.T) {
		a := product(t, "SYSCO", "PEPPER BLACK GROUND", "6/1LB")
		b := product(t, "SHAMROCK", "FLOUR ALL PURPOSE", "50 LB")
		score := svc.Score(a, b)
		if score.Total >= 0.6 {
			t.Errorf("Total = %v, want < 0.6", score.Total)
		}
	})

	t.Run("grind conflict drops score and caps confidence", func(t *testing.T) {
		fine := product(t, "SYSCO", "PEPPER BLACK FINE", "6/1LB")
		coarse := product(t, "SHAMROCK", "PEPPER BLACK COARSE", "6/1LB")
		same := product(t, "SHAMROCK", "PEPPER BLACK FINE", "6/1LB")

		conflicted := svc.Score(fine, coarse)
		agreed := svc.Score(fine, same)

		if !conflicted.SpecConflict {
			t.Fatalf("SpecConflict = false, want true for FINE vs COARSE")
		}
		if agreed.Total-conflicted.Total < 0.15 {
			t.Errorf("conflict penalty = %v, want >= 0.15 (agreed %v, conflicted %v)",
				agreed.Total-conflicted.Total, agreed.Total, conflicted.Total)
		}
		if svc.Classify(conflicted) == domain.ConfidenceHigh {
			t.Errorf("conflicted pair classified HIGH, want at most MEDIUM")
		}
	})

	t.Run("matching brands add to the score", func(t *testing.T) {
		a := product(t, "SYSCO", "MCCORMICK PEPPER BLACK GROUND", "6/1LB")
		b := product(t, "SHAMROCK", "MCCORMICK PEPPER BLACK GROUND", "25 LB")
		c := product(t, "SHAMROCK", "BADIA PEPPER BLACK GROUND", "25 LB")

		sameBrand := svc.Score(a, b)
		diffBrand := svc.Score(a, c)
		if sameBrand.BrandSignal != 0.2 {
			t.Errorf("same brand signal = %v, want 0.2", sameBrand.BrandSignal)
		}
		if diffBrand.BrandSignal != -0.05 {
			t.Errorf("different brand signal = %v, want -0.05", diffBrand.BrandSignal)
		}
		if sameBrand.Total <= diffBrand.Total {
			t.Errorf("same brand total %v not above different brand total %v", sameBrand.Total, diffBrand.Total)
		}
	})

	t.Run("unit domain agreement adds bonus", func(t *testing.T) {
		a := product(t, "SYSCO", "OIL CANOLA", "4/1 GAL")
		sameDomain := product(t, "SHAMROCK", "OIL CANOLA", "35 LB")
		volume := product(t, "SHAMROCK", "OIL CANOLA", "6/1 GAL")

		if svc.Score(a, volume).UnitBonus != 0.1 {
			t.Errorf("UnitBonus = %v, want 0.1 for matching domains", svc.Score(a, volume).UnitBonus)
		}
		if svc.Score(a, sameDomain).UnitBonus != 0 {
			t.Errorf("UnitBonus = %v, want 0 for weight vs volume", svc.Score(a, sameDomain).UnitBonus)
		}
	})

	t.Run("unparsed pack earns no unit bonus", func(t *testing.T) {
		a := product(t, "SYSCO", "OIL CANOLA", "4/1 GAL")
		b := product(t, "SHAMROCK", "OIL CANOLA", "SEASONAL")
		if svc.Score(a, b).UnitBonus != 0 {
			t.Errorf("UnitBonus = %v, want 0 when one pack is unparsed", svc.Score(a, b).UnitBonus)
		}
	})

	t.Run("total stays within unit interval", func(t *testing.T) {
		a := product(t, "SYSCO", "SYSCO CLASSIC SALT KOSHER", "12/3LB")
		b := product(t, "SHAMROCK", "MORTON SUGAR GRANULATED", "50 LB")
		score := svc.Score(a, b)
		if score.Total < 0 || score.Total > 1 {
			t.Errorf("Total = %v, want within [0, 1]", score.Total)
		}
	})
}

func TestSpecAgreement(t *testing.T) {
	t.Run("no populated categories is vacuous agreement", func(t *testing.T) {
		agreement, conflict := specAgreement(nil, nil)
		if agreement != 1.0 || conflict {
			t.Errorf("specAgreement(nil, nil) = %v, %v, want 1.0, false", agreement, conflict)
		}
	})

	t.Run("one sided keywords earn nothing without conflict", func(t *testing.T) {
		specsA := map[domain.SpecCategory][]string{domain.SpecGrind: {"FINE"}}
		agreement, conflict := specAgreement(specsA, nil)
		if agreement != 0 {
			t.Errorf("agreement = %v, want 0", agreement)
		}
		if conflict {
			t.Errorf("conflict = true, want false for one sided keywords")
		}
	})

	t.Run("partial overlap earns half credit", func(t *testing.T) {
		specsA := map[domain.SpecCategory][]string{domain.SpecGrind: {"FINE", "GROUND"}}
		specsB := map[domain.SpecCategory][]string{domain.SpecGrind: {"GROUND"}}
		agreement, conflict := specAgreement(specsA, specsB)
		if agreement != 0.5 {
			t.Errorf("agreement = %v, want 0.5", agreement)
		}
		if conflict {
			t.Errorf("conflict = true, want false for partial overlap")
		}
	})

	t.Run("averages over populated categories only", func(t *testing.T) {
		specsA := map[domain.SpecCategory][]string{
			domain.SpecGrind: {"GROUND"},
			domain.SpecForm:  {"DRIED"},
		}
		specsB := map[domain.SpecCategory][]string{
			domain.SpecGrind: {"GROUND"},
			domain.SpecForm:  {"FRESH"},
		}
		agreement, conflict := specAgreement(specsA, specsB)
		if agreement != 0.5 {
			t.Errorf("agreement = %v, want 0.5 (one full, one zero)", agreement)
		}
		if !conflict {
			t.Errorf("conflict = false, want true for DRIED vs FRESH")
		}
	})
}
