package defaults

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

// ErrInvalidCombination indicates a management system that does not belong to the species.
var ErrInvalidCombination = errors.New("invalid species/management combination")

const (
	// DefaultBatchSize and DefaultPeriodDays seed a new batch.
	DefaultBatchSize  = 50
	DefaultPeriodDays = 90
)

var managementOptions = map[models.Species][]models.ManagementSystem{
	models.SpeciesCattle:  {models.ManagementPasture, models.ManagementFeedlot},
	models.SpeciesSwine:   {models.ManagementIntensiveSystem},
	models.SpeciesPoultry: {models.ManagementFreeRange, models.ManagementIndustrialFinishing},
}

type key struct {
	species    models.Species
	management models.ManagementSystem
}

var growthTable = map[key]models.GrowthDefaults{
	{models.SpeciesCattle, models.ManagementPasture}: {
		DailyGainKg: 0.5, CarcassYieldPercent: 50, InitialWeightKg: 380, PeriodLabel: "Grazing days",
	},
	{models.SpeciesCattle, models.ManagementFeedlot}: {
		DailyGainKg: 1.5, CarcassYieldPercent: 54, InitialWeightKg: 420, PeriodLabel: "Feedlot days",
	},
	{models.SpeciesSwine, models.ManagementIntensiveSystem}: {
		DailyGainKg: 0.9, CarcassYieldPercent: 76, InitialWeightKg: 28, PeriodLabel: "Housing days",
	},
	{models.SpeciesPoultry, models.ManagementFreeRange}: {
		DailyGainKg: 0.035, CarcassYieldPercent: 70, InitialWeightKg: 0.045, PeriodLabel: "Life cycle (days)",
	},
	{models.SpeciesPoultry, models.ManagementIndustrialFinishing}: {
		DailyGainKg: 0.065, CarcassYieldPercent: 73, InitialWeightKg: 0.048, PeriodLabel: "Shed days",
	},
}

// ResolveDefaults returns the baseline growth parameters for the pair.
func ResolveDefaults(species models.Species, management models.ManagementSystem) (models.GrowthDefaults, error) {
	d, ok := growthTable[key{species, management}]
	if !ok {
		return models.GrowthDefaults{}, fmt.Errorf("%w: %q is not available for %q", ErrInvalidCombination, management, species)
	}
	return d, nil
}

// LegalManagementSystems lists the systems valid for species in display order.
// The returned slice is a copy; unknown species yield nil.
func LegalManagementSystems(species models.Species) []models.ManagementSystem {
	opts := managementOptions[species]
	if len(opts) == 0 {
		return nil
	}
	out := make([]models.ManagementSystem, len(opts))
	copy(out, opts)
	return out
}

// DefaultManagementSystem is the first legal system for species.
func DefaultManagementSystem(species models.Species) (models.ManagementSystem, error) {
	opts := managementOptions[species]
	if len(opts) == 0 {
		return "", fmt.Errorf("%w: unknown species %q", ErrInvalidCombination, species)
	}
	return opts[0], nil
}

// NewBatchParameters seeds a batch for species in region with the species'
// default management system and its growth defaults.
func NewBatchParameters(species models.Species, region models.Region) (models.BatchParameters, error) {
	params := models.BatchParameters{
		Region:     region,
		BatchSize:  DefaultBatchSize,
		PeriodDays: DefaultPeriodDays,
	}
	if err := ApplySpecies(&params, species); err != nil {
		return models.BatchParameters{}, err
	}
	return params, nil
}

// ApplySpecies switches the batch to species, resets management to the
// species default and overwrites the growth fields with fresh defaults.
// Prior edits to weight, gain and yield are discarded; batch size, period,
// region and manual price survive.
func ApplySpecies(params *models.BatchParameters, species models.Species) error {
	management, err := DefaultManagementSystem(species)
	if err != nil {
		return err
	}
	d, err := ResolveDefaults(species, management)
	if err != nil {
		return err
	}
	params.Species = species
	params.Management = management
	seed(params, d)
	return nil
}

// ApplyManagement switches the management system within the current species
// and overwrites the growth fields. params is left untouched on error.
func ApplyManagement(params *models.BatchParameters, management models.ManagementSystem) error {
	d, err := ResolveDefaults(params.Species, management)
	if err != nil {
		return err
	}
	params.Management = management
	seed(params, d)
	return nil
}

func seed(params *models.BatchParameters, d models.GrowthDefaults) {
	params.DailyGainKg = d.DailyGainKg
	params.CarcassYieldPercent = d.CarcassYieldPercent
	params.InitialWeightKg = d.InitialWeightKg
}
