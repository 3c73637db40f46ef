package defaults

import (
	"errors"
	"testing"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

func TestResolveDefaults_AllLegalPairs(t *testing.T) {
	for _, species := range models.AllSpecies {
		for _, management := range LegalManagementSystems(species) {
			t.Run(string(species)+"/"+string(management), func(t *testing.T) {
				d, err := ResolveDefaults(species, management)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if d.DailyGainKg <= 0 || d.InitialWeightKg <= 0 || d.PeriodLabel == "" {
					t.Errorf("incomplete defaults: %+v", d)
				}
				if d.CarcassYieldPercent < 0 || d.CarcassYieldPercent > 100 {
					t.Errorf("yield out of range: %v", d.CarcassYieldPercent)
				}

				again, _ := ResolveDefaults(species, management)
				if again != d {
					t.Errorf("expected identical results, got %+v and %+v", d, again)
				}
			})
		}
	}
}

func TestResolveDefaults_KnownValues(t *testing.T) {
	tests := []struct {
		species    models.Species
		management models.ManagementSystem
		gain       float64
		yield      float64
		initial    float64
	}{
		{models.SpeciesCattle, models.ManagementPasture, 0.5, 50, 380},
		{models.SpeciesCattle, models.ManagementFeedlot, 1.5, 54, 420},
		{models.SpeciesSwine, models.ManagementIntensiveSystem, 0.9, 76, 28},
		{models.SpeciesPoultry, models.ManagementFreeRange, 0.035, 70, 0.045},
		{models.SpeciesPoultry, models.ManagementIndustrialFinishing, 0.065, 73, 0.048},
	}

	for _, tt := range tests {
		d, err := ResolveDefaults(tt.species, tt.management)
		if err != nil {
			t.Fatalf("%s/%s: %v", tt.species, tt.management, err)
		}
		if d.DailyGainKg != tt.gain || d.CarcassYieldPercent != tt.yield || d.InitialWeightKg != tt.initial {
			t.Errorf("%s/%s: got %+v", tt.species, tt.management, d)
		}
	}
}

func TestResolveDefaults_InvalidCombination(t *testing.T) {
	tests := []struct {
		species    models.Species
		management models.ManagementSystem
	}{
		{models.SpeciesSwine, models.ManagementPasture},
		{models.SpeciesCattle, models.ManagementFreeRange},
		{models.SpeciesPoultry, models.ManagementFeedlot},
		{models.Species("goat"), models.ManagementPasture},
	}

	for _, tt := range tests {
		_, err := ResolveDefaults(tt.species, tt.management)
		if !errors.Is(err, ErrInvalidCombination) {
			t.Errorf("%s/%s: expected ErrInvalidCombination, got %v", tt.species, tt.management, err)
		}
	}
}

func TestLegalManagementSystems(t *testing.T) {
	got := LegalManagementSystems(models.SpeciesCattle)
	if len(got) != 2 || got[0] != models.ManagementPasture || got[1] != models.ManagementFeedlot {
		t.Fatalf("unexpected cattle systems: %v", got)
	}

	got[0] = models.ManagementFreeRange
	if LegalManagementSystems(models.SpeciesCattle)[0] != models.ManagementPasture {
		t.Error("caller mutation leaked into the table")
	}

	if LegalManagementSystems(models.Species("goat")) != nil {
		t.Error("expected nil for unknown species")
	}
}

func TestDefaultManagementSystem(t *testing.T) {
	want := map[models.Species]models.ManagementSystem{
		models.SpeciesCattle:  models.ManagementPasture,
		models.SpeciesSwine:   models.ManagementIntensiveSystem,
		models.SpeciesPoultry: models.ManagementFreeRange,
	}
	for species, management := range want {
		got, err := DefaultManagementSystem(species)
		if err != nil {
			t.Fatalf("%s: %v", species, err)
		}
		if got != management {
			t.Errorf("%s: expected %s, got %s", species, management, got)
		}
	}

	if _, err := DefaultManagementSystem(models.Species("goat")); !errors.Is(err, ErrInvalidCombination) {
		t.Errorf("expected ErrInvalidCombination, got %v", err)
	}
}

func TestApplySpecies_OverwritesOnlyGrowthFields(t *testing.T) {
	manual := 9.75
	params := models.BatchParameters{
		Species:             models.SpeciesCattle,
		Region:              "MT",
		Management:          models.ManagementFeedlot,
		BatchSize:           120,
		InitialWeightKg:     999,
		DailyGainKg:         9,
		PeriodDays:          45,
		CarcassYieldPercent: 99,
		ManualPriceOverride: &manual,
	}

	if err := ApplySpecies(&params, models.SpeciesSwine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.Species != models.SpeciesSwine || params.Management != models.ManagementIntensiveSystem {
		t.Errorf("species/management not switched: %+v", params)
	}
	if params.DailyGainKg != 0.9 || params.CarcassYieldPercent != 76 || params.InitialWeightKg != 28 {
		t.Errorf("growth fields not reseeded: %+v", params)
	}
	if params.BatchSize != 120 || params.PeriodDays != 45 || params.Region != "MT" {
		t.Errorf("user fields changed: %+v", params)
	}
	if params.ManualPriceOverride == nil || *params.ManualPriceOverride != 9.75 {
		t.Errorf("manual price changed: %v", params.ManualPriceOverride)
	}
}

func TestApplyManagement(t *testing.T) {
	params, err := NewBatchParameters(models.SpeciesCattle, "SP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params.InitialWeightKg = 500
	params.PeriodDays = 120

	t.Run("valid switch reseeds", func(t *testing.T) {
		if err := ApplyManagement(&params, models.ManagementFeedlot); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if params.InitialWeightKg != 420 || params.DailyGainKg != 1.5 || params.CarcassYieldPercent != 54 {
			t.Errorf("growth fields not reseeded: %+v", params)
		}
		if params.PeriodDays != 120 {
			t.Errorf("period changed: %d", params.PeriodDays)
		}
	})

	t.Run("invalid switch leaves params untouched", func(t *testing.T) {
		before := params
		err := ApplyManagement(&params, models.ManagementIntensiveSystem)
		if !errors.Is(err, ErrInvalidCombination) {
			t.Fatalf("expected ErrInvalidCombination, got %v", err)
		}
		if params != before {
			t.Errorf("params mutated on error: %+v", params)
		}
	})
}

func TestNewBatchParameters(t *testing.T) {
	params, err := NewBatchParameters(models.SpeciesPoultry, "PR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Management != models.ManagementFreeRange || params.InitialWeightKg != 0.045 {
		t.Errorf("unexpected seed: %+v", params)
	}
	if params.BatchSize != DefaultBatchSize || params.PeriodDays != DefaultPeriodDays || params.Region != "PR" {
		t.Errorf("unexpected batch fields: %+v", params)
	}
	if params.ManualPriceOverride != nil {
		t.Error("manual price should be unset")
	}

	if _, err := NewBatchParameters(models.Species("goat"), "SP"); !errors.Is(err, ErrInvalidCombination) {
		t.Errorf("expected ErrInvalidCombination, got %v", err)
	}
}
