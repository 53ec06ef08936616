package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/garagebook/garagebook/internal/config"
	"github.com/garagebook/garagebook/internal/database"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler periodically rewrites every vehicle's cached mileage column from
// its charging records. Reads recompute the sum anyway; the rewrite keeps the
// stored column and the AVG() in the global stats honest.
type Scheduler struct {
	db   *database.DB
	cfg  *config.Config
	cron *cron.Cron
}

func NewScheduler(db *database.DB, cfg *config.Config) *Scheduler {
	return &Scheduler{
		db:   db,
		cfg:  cfg,
		cron: cron.New(),
	}
}

// Start begins the scheduled refresh job
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.RefreshSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := s.RefreshMileage(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled mileage refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("adding cron job: %w", err)
	}

	s.cron.Start()
	log.Info().Str("schedule", s.cfg.RefreshSchedule).Msg("mileage refresh scheduler started")

	if s.cfg.RefreshOnStartup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := s.RefreshMileage(ctx); err != nil {
				log.Error().Err(err).Msg("startup mileage refresh failed")
			}
		}()
	}

	return nil
}

// Stop halts the cron scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RefreshMileage runs one refresh pass.
func (s *Scheduler) RefreshMileage(ctx context.Context) error {
	updated, err := s.db.RefreshMileage(ctx)
	if err != nil {
		return err
	}
	log.Info().Int64("vehicles", updated).Msg("mileage cache refreshed")
	return nil
}
