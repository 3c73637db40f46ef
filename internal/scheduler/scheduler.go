package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdvalue/internal/config"
	"github.com/mamadbah2/herdvalue/internal/domain/models"
	"github.com/mamadbah2/herdvalue/internal/service/market"
	"github.com/mamadbah2/herdvalue/internal/service/simulation"
)

const probeTimeout = 2 * time.Minute

// ProbeResult is the quote observed for one watch-list entry.
type ProbeResult struct {
	Species  models.Species
	Region   models.Region
	Quote    models.Quote
	Degraded bool
}

// Scheduler periodically checks the market quote provider.
type Scheduler struct {
	cron      *cron.Cron
	resolver  simulation.QuoteResolver
	schedule  string
	watchlist []config.WatchItem
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.ProbeConfig, resolver simulation.QuoteResolver, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
		loc = l
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		resolver:  resolver,
		schedule:  cfg.CronSchedule,
		watchlist: cfg.Watchlist,
		logger:    logger,
	}, nil
}

// Start registers the probe and starts the scheduler. An empty schedule
// disables the probe.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("market probe disabled")
		return nil
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.Int("watchlist", len(s.watchlist)))

	if _, err := s.cron.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule market probe: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running probe to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	s.RunProbe(ctx)
}

// RunProbe resolves a quote for every watch-list entry and logs what it saw.
// Entries with an unknown species are skipped.
func (s *Scheduler) RunProbe(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, 0, len(s.watchlist))
	for _, item := range s.watchlist {
		species := models.Species(item.Species)
		region := models.Region(item.Region)
		if !species.Valid() {
			s.logger.Warn("skipping unknown species in watchlist", zap.String("species", item.Species))
			continue
		}

		quote := s.resolver.ResolveQuote(ctx, species, region, nil)
		res := ProbeResult{Species: species, Region: region, Quote: quote, Degraded: market.IsDegraded(quote)}
		results = append(results, res)

		fields := []zap.Field{
			zap.String("species", string(species)),
			zap.String("region", string(region)),
			zap.Float64("price", quote.Price),
			zap.String("unit", string(quote.Unit)),
			zap.String("source", quote.Source),
			zap.String("trend", string(quote.Trend)),
		}
		if res.Degraded {
			s.logger.Warn("market probe degraded", fields...)
		} else {
			s.logger.Info("market probe", fields...)
		}
	}
	return results
}
