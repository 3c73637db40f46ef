package market

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/herdvalue/internal/domain/models"
)

type stubProvider struct {
	quote models.Quote
	err   error
	calls int
}

func (s *stubProvider) FetchQuote(ctx context.Context, species models.Species, region models.Region) (models.Quote, error) {
	s.calls++
	return s.quote, s.err
}

var liveQuote = models.Quote{
	Price:      312.40,
	Unit:       models.UnitArroba,
	Source:     "CEPEA",
	Date:       "17/10/2026",
	Trend:      models.TrendUp,
	Commentary: "Firm demand from packers in São Paulo.",
}

func withPrice(q models.Quote, price float64) models.Quote {
	q.Price = price
	return q
}

func newTestResolver(t *testing.T, p QuoteProvider) *Resolver {
	r := NewResolver(p, zaptest.NewLogger(t))
	r.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	return r
}

func TestResolveQuote_Live(t *testing.T) {
	provider := &stubProvider{quote: liveQuote}
	r := newTestResolver(t, provider)

	got := r.ResolveQuote(context.Background(), models.SpeciesCattle, "SP", nil)

	if got != liveQuote {
		t.Errorf("expected live quote, got %+v", got)
	}
	if provider.calls != 1 {
		t.Errorf("expected one provider call, got %d", provider.calls)
	}
}

func TestResolveQuote_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		provider QuoteProvider
		species  models.Species
		unit     models.Unit
	}{
		{"provider error cattle", &stubProvider{err: errors.New("boom")}, models.SpeciesCattle, models.UnitArroba},
		{"provider error swine", &stubProvider{err: errors.New("boom")}, models.SpeciesSwine, models.UnitKilogram},
		{"provider error poultry", &stubProvider{err: errors.New("boom")}, models.SpeciesPoultry, models.UnitKilogram},
		{"invalid payload", &stubProvider{quote: models.Quote{Price: 0, Unit: models.UnitKilogram}}, models.SpeciesSwine, models.UnitKilogram},
		{"nil provider", nil, models.SpeciesCattle, models.UnitArroba},
		{"+Inf price", &stubProvider{quote: withPrice(liveQuote, math.Inf(1))}, models.SpeciesCattle, models.UnitArroba},
		{"NaN price", &stubProvider{quote: withPrice(liveQuote, math.NaN())}, models.SpeciesCattle, models.UnitArroba},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.provider)
			got := r.ResolveQuote(context.Background(), tt.species, "GO", nil)

			if got.Price != 285.50 {
				t.Errorf("expected price 285.50, got %v", got.Price)
			}
			if got.Unit != tt.unit {
				t.Errorf("expected unit %s, got %s", tt.unit, got.Unit)
			}
			if got.Source != FallbackSource || got.Trend != models.TrendStable || got.Commentary != FallbackCommentary {
				t.Errorf("unexpected fallback metadata: %+v", got)
			}
			if got.Date != "18/10/2026" {
				t.Errorf("expected current date, got %s", got.Date)
			}
			if got.IsManual {
				t.Error("fallback must not be manual")
			}
			if !IsDegraded(got) {
				t.Error("fallback should be reported as degraded")
			}
		})
	}
}

func TestResolveQuote_ManualOverLive(t *testing.T) {
	provider := &stubProvider{quote: liveQuote}
	r := newTestResolver(t, provider)
	price := 300.0

	got := r.ResolveQuote(context.Background(), models.SpeciesCattle, "SP", &price)

	if provider.calls != 1 {
		t.Errorf("provider must be called even under manual pricing, got %d calls", provider.calls)
	}
	if got.Price != 300 || got.Source != ManualSource || !got.IsManual {
		t.Errorf("override not applied: %+v", got)
	}
	if got.Unit != liveQuote.Unit || got.Date != liveQuote.Date || got.Trend != liveQuote.Trend || got.Commentary != liveQuote.Commentary {
		t.Errorf("context fields not preserved: %+v", got)
	}
	if IsDegraded(got) {
		t.Error("manual over live data is not degraded")
	}
}

func TestResolveQuote_ManualOverFallback(t *testing.T) {
	r := newTestResolver(t, &stubProvider{err: errors.New("timeout")})
	price := 8.50

	got := r.ResolveQuote(context.Background(), models.SpeciesSwine, "SC", &price)

	want := models.Quote{
		Price:      8.50,
		Unit:       models.UnitKilogram,
		Source:     ManualSource,
		Date:       "18/10/2026",
		Trend:      models.TrendStable,
		Commentary: FallbackCommentary,
		IsManual:   true,
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if !IsDegraded(got) {
		t.Error("manual over fallback should still be reported as degraded")
	}
}

func TestResolveQuote_ManualNotValidated(t *testing.T) {
	r := newTestResolver(t, &stubProvider{quote: liveQuote})

	for _, price := range []float64{0, -10} {
		p := price
		got := r.ResolveQuote(context.Background(), models.SpeciesCattle, "SP", &p)
		if got.Price != price || !got.IsManual {
			t.Errorf("override %v not applied verbatim: %+v", price, got)
		}
	}
}

func TestResolveQuote_ProviderCannotForceManual(t *testing.T) {
	q := liveQuote
	q.IsManual = true
	r := newTestResolver(t, &stubProvider{quote: q})

	got := r.ResolveQuote(context.Background(), models.SpeciesCattle, "SP", nil)
	if got.IsManual {
		t.Error("provider quote must not be marked manual")
	}
}
