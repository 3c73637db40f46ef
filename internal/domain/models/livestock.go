package models

// Species enumerates the livestock categories supported by the simulator.
type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesSwine   Species = "swine"
	SpeciesPoultry Species = "poultry"
)

// AllSpecies lists the species in display order.
var AllSpecies = []Species{SpeciesCattle, SpeciesSwine, SpeciesPoultry}

// ManagementSystem enumerates husbandry systems. A value is only meaningful
// together with the species that owns it.
type ManagementSystem string

const (
	ManagementPasture             ManagementSystem = "pasture"
	ManagementFeedlot             ManagementSystem = "feedlot"
	ManagementIntensiveSystem     ManagementSystem = "intensive_system"
	ManagementFreeRange           ManagementSystem = "free_range"
	ManagementIndustrialFinishing ManagementSystem = "industrial_finishing"
)

// SpeciesProfile carries the descriptive data attached to a species.
type SpeciesProfile struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	SaleUnit    Unit   `json:"sale_unit"`
}

var speciesProfiles = map[Species]SpeciesProfile{
	SpeciesCattle:  {Label: "Bovino", Description: "Boi, Vaca ou Novilha", SaleUnit: UnitArroba},
	SpeciesSwine:   {Label: "Suíno", Description: "Terminação comercial", SaleUnit: UnitKilogram},
	SpeciesPoultry: {Label: "Frango", Description: "Aves de corte", SaleUnit: UnitKilogram},
}

// Valid reports whether s is one of the known species.
func (s Species) Valid() bool {
	_, ok := speciesProfiles[s]
	return ok
}

// Profile returns the descriptive profile of the species.
func (s Species) Profile() (SpeciesProfile, bool) {
	p, ok := speciesProfiles[s]
	return p, ok
}

// SaleUnit is the unit the species is traded in: arroba for cattle,
// kilogram for everything else.
func (s Species) SaleUnit() Unit {
	if s == SpeciesCattle {
		return UnitArroba
	}
	return UnitKilogram
}

// GrowthDefaults holds the baseline zootechnical parameters for a
// species/management pair.
type GrowthDefaults struct {
	DailyGainKg         float64 `json:"daily_gain_kg"`
	CarcassYieldPercent float64 `json:"carcass_yield_percent"`
	InitialWeightKg     float64 `json:"initial_weight_kg"`
	PeriodLabel         string  `json:"period_label"`
}

// Region is a Brazilian state code (UF).
type Region string

var allRegions = map[Region]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// OfferedRegions are the states presented to users, main producers first.
var OfferedRegions = []Region{
	"SP", "SC", "PR", "RS", "MG", "MS", "MT", "GO", "BA", "PA", "TO", "RO", "MA", "PI", "CE", "PE", "ES",
}

// Valid reports whether r is a known state code.
func (r Region) Valid() bool {
	_, ok := allRegions[r]
	return ok
}
