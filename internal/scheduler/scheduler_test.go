package scheduler

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/herdvalue/internal/config"
	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/market"
)

type regionalProvider struct{}

func (regionalProvider) FetchQuote(ctx context.Context, species models.Species, region models.Region) (models.Quote, error) {
	if region == "SP" {
		return models.Quote{Price: 320, Unit: models.UnitArroba, Source: "CEPEA", Date: "17/10/2026", Trend: models.TrendUp, Commentary: "Alta."}, nil
	}
	return models.Quote{}, errors.New("no coverage")
}

func TestRunProbe(t *testing.T) {
	cfg := config.ProbeConfig{
		CronSchedule: "0 7 * * 1-5",
		Timezone:     "UTC",
		Watchlist: []config.WatchItem{
			{Species: "cattle", Region: "SP"},
			{Species: "goat", Region: "SP"},
			{Species: "swine", Region: "SC"},
		},
	}
	resolver := market.NewResolver(regionalProvider{}, zaptest.NewLogger(t))

	s, err := NewScheduler(cfg, resolver, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results := s.RunProbe(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Degraded || results[0].Quote.Price != 320 {
		t.Errorf("expected live cattle quote, got %+v", results[0])
	}
	if !results[1].Degraded || results[1].Quote.Unit != models.UnitKilogram {
		t.Errorf("expected degraded swine quote, got %+v", results[1])
	}
}

func TestStartStop(t *testing.T) {
	resolver := market.NewResolver(nil, nil)

	s, err := NewScheduler(config.ProbeConfig{CronSchedule: "@every 1h", Timezone: "UTC"}, resolver, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()

	bad, _ := NewScheduler(config.ProbeConfig{CronSchedule: "not a schedule"}, resolver, nil)
	if err := bad.Start(); err == nil {
		t.Error("expected error for invalid schedule")
	}

	if _, err := NewScheduler(config.ProbeConfig{Timezone: "Mars/Olympus"}, resolver, nil); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
