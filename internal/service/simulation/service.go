package simulation

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/defaults"
	"github.com/mamadbah2/herdvalue/internal/service/market"
	"github.com/mamadbah2/herdvalue/internal/service/valuation"
)

// ErrSessionNotFound indicates an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")

// ErrValuationInFlight indicates a valuation is already running for the session.
var ErrValuationInFlight = errors.New("valuation already in progress")

// QuoteResolver is the quote policy the service delegates to.
type QuoteResolver interface {
	ResolveQuote(ctx context.Context, species models.Species, region models.Region, manualOverride *float64) models.Quote
}

// ParameterPatch carries the user-editable batch fields. Nil fields are
// left unchanged.
type ParameterPatch struct {
	Region              *models.Region
	BatchSize           *int
	InitialWeightKg     *float64
	DailyGainKg         *float64
	PeriodDays          *int
	CarcassYieldPercent *float64
	ManualPrice         *float64
	ClearManualPrice    bool
}

func (p ParameterPatch) apply(params *models.BatchParameters) {
	if p.Region != nil {
		params.Region = *p.Region
	}
	if p.BatchSize != nil {
		params.BatchSize = *p.BatchSize
	}
	if p.InitialWeightKg != nil {
		params.InitialWeightKg = *p.InitialWeightKg
	}
	if p.DailyGainKg != nil {
		params.DailyGainKg = *p.DailyGainKg
	}
	if p.PeriodDays != nil {
		params.PeriodDays = *p.PeriodDays
	}
	if p.CarcassYieldPercent != nil {
		params.CarcassYieldPercent = *p.CarcassYieldPercent
	}
	switch {
	case p.ClearManualPrice:
		params.ManualPriceOverride = nil
	case p.ManualPrice != nil:
		v := *p.ManualPrice
		params.ManualPriceOverride = &v
	}
}

// Service drives the simulation workflow: seed a batch, edit it, value it.
type Service struct {
	resolver QuoteResolver
	sessions *SessionManager
	logger   *zap.Logger
}

// NewService wires a simulation service.
func NewService(resolver QuoteResolver, sessions *SessionManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionManager()
	}
	return &Service{resolver: resolver, sessions: sessions, logger: logger}
}

// Simulate resolves a quote for params and values the batch with it.
func (s *Service) Simulate(ctx context.Context, params models.BatchParameters) models.ResultSummary {
	quote := s.resolver.ResolveQuote(ctx, params.Species, params.Region, params.ManualPriceOverride)
	result := valuation.ComputeValuation(params, quote)

	s.logger.Info("valuation computed",
		zap.String("species", string(params.Species)),
		zap.String("management", string(params.Management)),
		zap.String("region", string(params.Region)),
		zap.Int("batch_size", params.BatchSize),
		zap.String("quote_source", quote.Source),
		zap.Bool("degraded", market.IsDegraded(quote)),
		zap.Float64("total_value", result.TotalValue))

	return result
}

// CreateSession starts a session seeded with the species defaults.
func (s *Service) CreateSession(species models.Species, region models.Region) (Session, error) {
	params, err := defaults.NewBatchParameters(species, region)
	if err != nil {
		return Session{}, err
	}
	session := s.sessions.Create(params)
	s.logger.Debug("session created", zap.String("session_id", session.ID), zap.String("species", string(species)))
	return session, nil
}

// GetSession returns the current state of a session.
func (s *Service) GetSession(id string) (Session, error) {
	return s.sessions.Get(id)
}

// ChangeSpecies switches species and reseeds management and growth defaults.
func (s *Service) ChangeSpecies(id string, species models.Species) (Session, error) {
	return s.sessions.Update(id, func(p *models.BatchParameters) error {
		return defaults.ApplySpecies(p, species)
	})
}

// ChangeManagement switches the management system and reseeds growth defaults.
func (s *Service) ChangeManagement(id string, management models.ManagementSystem) (Session, error) {
	return s.sessions.Update(id, func(p *models.BatchParameters) error {
		return defaults.ApplyManagement(p, management)
	})
}

// UpdateParameters applies user edits to the session's batch.
func (s *Service) UpdateParameters(id string, patch ParameterPatch) (Session, error) {
	return s.sessions.Update(id, func(p *models.BatchParameters) error {
		patch.apply(p)
		return nil
	})
}

// TriggerValuation values the session's batch as it stands now. A second
// trigger while the first is running fails with ErrValuationInFlight.
func (s *Service) TriggerValuation(ctx context.Context, id string) (models.ResultSummary, error) {
	params, err := s.sessions.Begin(id)
	if err != nil {
		return models.ResultSummary{}, err
	}

	finished := false
	defer func() {
		if !finished {
			s.sessions.Abort(id)
			s.logger.Error("valuation aborted", zap.String("session_id", id))
		}
	}()

	result := s.Simulate(ctx, params)
	s.sessions.Finish(id, result)
	finished = true
	return result, nil
}

// DeleteSession drops a session.
func (s *Service) DeleteSession(id string) error {
	return s.sessions.Delete(id)
}
