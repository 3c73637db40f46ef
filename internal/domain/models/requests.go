package models

// QuoteRequest asks for a resolved quote, optionally priced manually.
type QuoteRequest struct {
	Species     Species  `json:"species" binding:"required"`
	Region      Region   `json:"region" binding:"required"`
	ManualPrice *float64 `json:"manual_price" binding:"omitempty,gt=0"`
}

// BatchRequest carries a full set of batch parameters. Numeric bounds are
// enforced here, at the edge, not by the engine.
type BatchRequest struct {
	Species             Species          `json:"species" binding:"required"`
	Region              Region           `json:"region" binding:"required"`
	Management          ManagementSystem `json:"management" binding:"required"`
	BatchSize           int              `json:"batch_size" binding:"required,gte=1"`
	InitialWeightKg     float64          `json:"initial_weight_kg" binding:"required,gt=0"`
	DailyGainKg         float64          `json:"daily_gain_kg" binding:"required,gt=0"`
	PeriodDays          int              `json:"period_days" binding:"required,gt=0"`
	CarcassYieldPercent *float64         `json:"carcass_yield_percent" binding:"required,gte=0,lte=100"`
	ManualPrice         *float64         `json:"manual_price" binding:"omitempty,gt=0"`
}

// Params converts the request into engine parameters.
func (r BatchRequest) Params() BatchParameters {
	p := BatchParameters{
		Species:             r.Species,
		Region:              r.Region,
		Management:          r.Management,
		BatchSize:           r.BatchSize,
		InitialWeightKg:     r.InitialWeightKg,
		DailyGainKg:         r.DailyGainKg,
		PeriodDays:          r.PeriodDays,
		CarcassYieldPercent: *r.CarcassYieldPercent,
	}
	if r.ManualPrice != nil {
		v := *r.ManualPrice
		p.ManualPriceOverride = &v
	}
	return p
}

// QuoteInput is a caller-supplied quote for stateless valuations.
type QuoteInput struct {
	Price      float64 `json:"price" binding:"required,gt=0"`
	Unit       Unit    `json:"unit" binding:"required,oneof=@ kg"`
	Source     string  `json:"source"`
	Date       string  `json:"date"`
	Trend      Trend   `json:"trend" binding:"omitempty,oneof=up down stable"`
	Commentary string  `json:"commentary"`
	IsManual   bool    `json:"is_manual"`
}

// ValuationRequest values a batch against a quote the caller already holds.
type ValuationRequest struct {
	Params BatchRequest `json:"params"`
	Quote  QuoteInput   `json:"quote"`
}

// CreateSessionRequest starts a simulation session.
type CreateSessionRequest struct {
	Species Species `json:"species" binding:"required"`
	Region  Region  `json:"region" binding:"required"`
}

// ChangeSpeciesRequest switches a session's species.
type ChangeSpeciesRequest struct {
	Species Species `json:"species" binding:"required"`
}

// ChangeManagementRequest switches a session's management system.
type ChangeManagementRequest struct {
	Management ManagementSystem `json:"management" binding:"required"`
}

// UpdateParametersRequest edits a session's batch. Absent fields are kept.
type UpdateParametersRequest struct {
	Region              *Region  `json:"region"`
	BatchSize           *int     `json:"batch_size" binding:"omitempty,gte=1"`
	InitialWeightKg     *float64 `json:"initial_weight_kg" binding:"omitempty,gt=0"`
	DailyGainKg         *float64 `json:"daily_gain_kg" binding:"omitempty,gt=0"`
	PeriodDays          *int     `json:"period_days" binding:"omitempty,gt=0"`
	CarcassYieldPercent *float64 `json:"carcass_yield_percent" binding:"omitempty,gte=0,lte=100"`
	ManualPrice         *float64 `json:"manual_price" binding:"omitempty,gt=0"`
	ClearManualPrice    bool     `json:"clear_manual_price"`
}
