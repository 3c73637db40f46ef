package market

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

const (
	FallbackPrice      = 285.50
	FallbackSource     = "Market Estimate"
	FallbackCommentary = "Real-time market data unavailable. Showing estimated average values."
	ManualSource       = "Manual"

	// DateLayout renders quote dates day-first, as Brazilian quotes are published.
	DateLayout = "02/01/2006"
)

// ErrProviderUnavailable is returned by providers that cannot serve quotes at all.
var ErrProviderUnavailable = errors.New("quote provider unavailable")

// QuoteProvider fetches a live market quote for a species in a region.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, species models.Species, region models.Region) (models.Quote, error)
}

// Resolver decides which quote a valuation uses: the provider's answer, a
// fallback estimate when the provider fails, and a manual price on top.
type Resolver struct {
	provider QuoteProvider
	logger   *zap.Logger
	now      func() time.Time
}

// NewResolver wires a resolver around provider. A nil provider makes every
// lookup fall back.
func NewResolver(provider QuoteProvider, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{provider: provider, logger: logger, now: time.Now}
}

// ResolveQuote always asks the provider first, even when manualOverride is
// set, so the trend, date and commentary stay available under manual
// pricing. It always returns a complete quote.
func (r *Resolver) ResolveQuote(ctx context.Context, species models.Species, region models.Region, manualOverride *float64) models.Quote {
	quote, err := r.fetch(ctx, species, region)
	if err != nil {
		r.logger.Warn("market quote unavailable, using estimate",
			zap.String("species", string(species)),
			zap.String("region", string(region)),
			zap.Error(err))
		quote = FallbackQuote(species, r.now())
	}

	if manualOverride != nil {
		quote = WithManualPrice(quote, *manualOverride)
	}
	return quote
}

func (r *Resolver) fetch(ctx context.Context, species models.Species, region models.Region) (models.Quote, error) {
	if r.provider == nil {
		return models.Quote{}, ErrProviderUnavailable
	}
	quote, err := r.provider.FetchQuote(ctx, species, region)
	if err != nil {
		return models.Quote{}, err
	}
	if err := Validate(quote); err != nil {
		return models.Quote{}, err
	}
	quote.IsManual = false
	return quote, nil
}

// FallbackQuote is the estimate used when no live quote can be obtained.
func FallbackQuote(species models.Species, now time.Time) models.Quote {
	return models.Quote{
		Price:      FallbackPrice,
		Unit:       species.SaleUnit(),
		Source:     FallbackSource,
		Date:       now.Format(DateLayout),
		Trend:      models.TrendStable,
		Commentary: FallbackCommentary,
	}
}

// WithManualPrice returns a copy of q priced at price and marked manual.
// The price is not validated here.
func WithManualPrice(q models.Quote, price float64) models.Quote {
	q.Price = price
	q.Source = ManualSource
	q.IsManual = true
	return q
}

// IsDegraded reports whether q was built on the fallback estimate rather
// than live data, including manual quotes layered over it.
func IsDegraded(q models.Quote) bool {
	if q.IsManual {
		return q.Commentary == FallbackCommentary
	}
	return q.Source == FallbackSource
}
