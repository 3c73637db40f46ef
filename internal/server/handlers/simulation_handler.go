package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/defaults"
	"github.com/mamadbah2/herdvalue/internal/service/simulation"
	"github.com/mamadbah2/herdvalue/internal/service/valuation"
)

// SimulationHandler exposes the defaults, quote, valuation and session
// operations over HTTP.
type SimulationHandler struct {
	svc    *simulation.Service
	quotes simulation.QuoteResolver
	logger *zap.Logger
}

// NewSimulationHandler constructs the HTTP handler adapter.
func NewSimulationHandler(svc *simulation.Service, quotes simulation.QuoteResolver, logger *zap.Logger) *SimulationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationHandler{svc: svc, quotes: quotes, logger: logger}
}

type speciesEntry struct {
	Species           models.Species            `json:"species"`
	Label             string                    `json:"label"`
	Description       string                    `json:"description"`
	SaleUnit          models.Unit               `json:"sale_unit"`
	ManagementSystems []models.ManagementSystem `json:"management_systems"`
	DefaultManagement models.ManagementSystem   `json:"default_management"`
}

type sessionView struct {
	simulation.Session
	ProjectedFinalWeightKg float64 `json:"projected_final_weight_kg"`
}

// ListSpecies returns the species catalogue.
func (h *SimulationHandler) ListSpecies(c *gin.Context) {
	out := make([]speciesEntry, 0, len(models.AllSpecies))
	for _, sp := range models.AllSpecies {
		profile, _ := sp.Profile()
		def, _ := defaults.DefaultManagementSystem(sp)
		out = append(out, speciesEntry{
			Species:           sp,
			Label:             profile.Label,
			Description:       profile.Description,
			SaleUnit:          sp.SaleUnit(),
			ManagementSystems: defaults.LegalManagementSystems(sp),
			DefaultManagement: def,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListRegions returns the regions offered for simulation.
func (h *SimulationHandler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, models.OfferedRegions)
}

// GetDefaults resolves growth defaults for a species/management pair.
func (h *SimulationHandler) GetDefaults(c *gin.Context) {
	species := models.Species(c.Query("species"))
	management := models.ManagementSystem(c.Query("management"))
	if management == "" {
		def, err := defaults.DefaultManagementSystem(species)
		if err != nil {
			h.writeError(c, err)
			return
		}
		management = def
	}

	d, err := defaults.ResolveDefaults(species, management)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"species": species, "management": management, "defaults": d})
}

// ResolveQuote returns the quote a valuation would use right now.
func (h *SimulationHandler) ResolveQuote(c *gin.Context) {
	var req models.QuoteRequest
	if !h.bind(c, &req) {
		return
	}
	if err := validateSpeciesRegion(req.Species, req.Region); err != nil {
		h.badRequest(c, err)
		return
	}

	quote := h.quotes.ResolveQuote(c.Request.Context(), req.Species, req.Region, req.ManualPrice)
	c.JSON(http.StatusOK, quote)
}

// ComputeValuation values a batch against a caller-supplied quote.
func (h *SimulationHandler) ComputeValuation(c *gin.Context) {
	var req models.ValuationRequest
	if !h.bind(c, &req) {
		return
	}
	params, ok := h.checkBatch(c, req.Params)
	if !ok {
		return
	}

	quote := models.Quote{
		Price:      req.Quote.Price,
		Unit:       req.Quote.Unit,
		Source:     req.Quote.Source,
		Date:       req.Quote.Date,
		Trend:      req.Quote.Trend,
		Commentary: req.Quote.Commentary,
		IsManual:   req.Quote.IsManual,
	}
	c.JSON(http.StatusOK, valuation.ComputeValuation(params, quote))
}

// Simulate resolves a quote and values the batch in one call.
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.BatchRequest
	if !h.bind(c, &req) {
		return
	}
	params, ok := h.checkBatch(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Simulate(c.Request.Context(), params))
}

// CreateSession starts a session seeded with species defaults.
func (h *SimulationHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if !h.bind(c, &req) {
		return
	}
	if err := validateSpeciesRegion(req.Species, req.Region); err != nil {
		h.badRequest(c, err)
		return
	}

	session, err := h.svc.CreateSession(req.Species, req.Region)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view(session))
}

// GetSession returns the session with its projected final weight.
func (h *SimulationHandler) GetSession(c *gin.Context) {
	session, err := h.svc.GetSession(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(session))
}

// ChangeSpecies switches the session's species, resetting growth defaults.
func (h *SimulationHandler) ChangeSpecies(c *gin.Context) {
	var req models.ChangeSpeciesRequest
	if !h.bind(c, &req) {
		return
	}
	session, err := h.svc.ChangeSpecies(c.Param("id"), req.Species)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(session))
}

// ChangeManagement switches the session's management system.
func (h *SimulationHandler) ChangeManagement(c *gin.Context) {
	var req models.ChangeManagementRequest
	if !h.bind(c, &req) {
		return
	}
	session, err := h.svc.ChangeManagement(c.Param("id"), req.Management)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(session))
}

// UpdateParameters applies user edits to the session's batch.
func (h *SimulationHandler) UpdateParameters(c *gin.Context) {
	var req models.UpdateParametersRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Region != nil && !req.Region.Valid() {
		h.badRequest(c, fmt.Errorf("unknown region %q", *req.Region))
		return
	}

	session, err := h.svc.UpdateParameters(c.Param("id"), simulation.ParameterPatch{
		Region:              req.Region,
		BatchSize:           req.BatchSize,
		InitialWeightKg:     req.InitialWeightKg,
		DailyGainKg:         req.DailyGainKg,
		PeriodDays:          req.PeriodDays,
		CarcassYieldPercent: req.CarcassYieldPercent,
		ManualPrice:         req.ManualPrice,
		ClearManualPrice:    req.ClearManualPrice,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view(session))
}

// TriggerValuation values the session's batch.
func (h *SimulationHandler) TriggerValuation(c *gin.Context) {
	result, err := h.svc.TriggerValuation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteSession drops a session.
func (h *SimulationHandler) DeleteSession(c *gin.Context) {
	if err := h.svc.DeleteSession(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SimulationHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.badRequest(c, err)
		return false
	}
	return true
}

func (h *SimulationHandler) checkBatch(c *gin.Context, req models.BatchRequest) (models.BatchParameters, bool) {
	if err := validateSpeciesRegion(req.Species, req.Region); err != nil {
		h.badRequest(c, err)
		return models.BatchParameters{}, false
	}
	if _, err := defaults.ResolveDefaults(req.Species, req.Management); err != nil {
		h.writeError(c, err)
		return models.BatchParameters{}, false
	}
	return req.Params(), true
}

func (h *SimulationHandler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *SimulationHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, defaults.ErrInvalidCombination):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, simulation.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, simulation.ErrValuationInFlight):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		h.logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func validateSpeciesRegion(species models.Species, region models.Region) error {
	if !species.Valid() {
		return fmt.Errorf("unknown species %q", species)
	}
	if !region.Valid() {
		return fmt.Errorf("unknown region %q", region)
	}
	return nil
}

func view(s simulation.Session) sessionView {
	return sessionView{Session: s, ProjectedFinalWeightKg: valuation.FinalWeightPerAnimal(s.Params)}
}
