// Package cron schedules the standing jobs: the nightly partition refresh
// and the sequential visibility import. Expressions come from the sheet
// registry; an empty expression leaves that job off.
package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/services"
)

const jobTimeout = 10 * time.Minute

type Scheduler struct {
	log              *logger.Logger
	cfg              config.Config
	syncService      services.SyncService
	reconcileService services.ReconcileService
	runner           *cron.Cron
}

func NewScheduler(log *logger.Logger, cfg config.Config, syncService services.SyncService, reconcileService services.ReconcileService) *Scheduler {
	return &Scheduler{
		log:              log.With("service", "Scheduler"),
		cfg:              cfg,
		syncService:      syncService,
		reconcileService: reconcileService,
		runner:           cron.New(),
	}
}

// Start registers the configured jobs and starts the runner. Returns the
// number of jobs scheduled so the caller can log whether the scheduler is
// doing anything.
func (s *Scheduler) Start() (int, error) {
	jobs := 0
	if spec := s.cfg.Cron.SyncAll; spec != "" {
		if _, err := s.runner.AddFunc(spec, s.runSyncAll); err != nil {
			return jobs, err
		}
		jobs++
		s.log.Info("Scheduled sync-all", "spec", spec)
	}
	if spec := s.cfg.Cron.ImportAll; spec != "" {
		if _, err := s.runner.AddFunc(spec, s.runImportAll); err != nil {
			return jobs, err
		}
		jobs++
		s.log.Info("Scheduled import-all", "spec", spec)
	}
	if jobs > 0 {
		s.runner.Start()
	}
	return jobs, nil
}

func (s *Scheduler) Stop() {
	ctx := s.runner.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSyncAll() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	results, err := s.syncService.SyncAll(ctx)
	if err != nil {
		s.log.Error("Scheduled sync-all failed", "error", err)
		return
	}
	for partition, result := range results {
		s.log.Info("Partition refreshed", "partition", partition, "deleted", result.Deleted, "inserted", result.Inserted)
	}
}

func (s *Scheduler) runImportAll() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	batch, err := s.reconcileService.Sequential(ctx, s.cfg.Keywords.SheetID)
	if err != nil {
		s.log.Error("Scheduled import-all failed", "error", err)
		return
	}
	s.log.Info("Scheduled import-all finished", "tabs", len(batch.Results), "updatedCells", batch.TotalUpdated)
}
