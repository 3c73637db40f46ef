package models

// BatchParameters describes one simulated cohort. It belongs to the caller
// and is copied by value into every ResultSummary built from it.
type BatchParameters struct {
	Species             Species          `json:"species"`
	Region              Region           `json:"region"`
	Management          ManagementSystem `json:"management"`
	BatchSize           int              `json:"batch_size"`
	InitialWeightKg     float64          `json:"initial_weight_kg"`
	DailyGainKg         float64          `json:"daily_gain_kg"`
	PeriodDays          int              `json:"period_days"`
	CarcassYieldPercent float64          `json:"carcass_yield_percent"`
	ManualPriceOverride *float64         `json:"manual_price_override,omitempty"`
}

// Clone returns a deep copy, detaching the manual price pointer.
func (p BatchParameters) Clone() BatchParameters {
	if p.ManualPriceOverride != nil {
		v := *p.ManualPriceOverride
		p.ManualPriceOverride = &v
	}
	return p
}

// ResultSummary is the frozen outcome of one valuation.
type ResultSummary struct {
	Params               BatchParameters `json:"params"`
	FinalWeightPerAnimal float64         `json:"final_weight_per_animal"`
	TotalInitialWeight   float64         `json:"total_initial_weight"`
	TotalFinalWeight     float64         `json:"total_final_weight"`
	TotalCarcassWeight   float64         `json:"total_carcass_weight"`
	TotalUnits           float64         `json:"total_units"`
	TotalValue           float64         `json:"total_value"`
	WeightGain           float64         `json:"weight_gain"`
	Quote                Quote           `json:"quote"`
}
