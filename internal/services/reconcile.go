package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wooil/sheetsync/internal/clients/sheets"
	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

// TabReport is the per-tab outcome of a reconciliation, rendered to the
// operator so partial success shows as such instead of a binary pass/fail.
type TabReport struct {
	Title        string `json:"title"`
	Matched      int    `json:"rowsMatched"`
	UpdatedCells int64  `json:"updatedCells"`
	Skipped      bool   `json:"skipped,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// BatchReport aggregates a multi-tab run.
type BatchReport struct {
	Results      []TabReport `json:"results"`
	TotalUpdated int64       `json:"updated"`
}

// ReconcileService writes database visibility flags back into the sheets,
// either by content key (single tab) or by strict record order across all
// managed tabs.
type ReconcileService interface {
	ContentKeyed(ctx context.Context, sheetID, tabName string) (TabReport, error)
	ContentKeyedAll(ctx context.Context, sheetID string) (BatchReport, error)
	Sequential(ctx context.Context, sheetID string) (BatchReport, error)
}

type reconcileService struct {
	log         *logger.Logger
	cfg         config.Config
	sheets      sheets.Client
	keywordRepo repos.KeywordRepo
}

func NewReconcileService(log *logger.Logger, cfg config.Config, sheetsClient sheets.Client, keywordRepo repos.KeywordRepo) ReconcileService {
	return &reconcileService{
		log:         log.With("service", "ReconcileService"),
		cfg:         cfg,
		sheets:      sheetsClient,
		keywordRepo: keywordRepo,
	}
}

// ContentKeyed reconciles one tab by natural-key lookup against the latest
// surviving record per key.
func (s *reconcileService) ContentKeyed(ctx context.Context, sheetID, tabName string) (TabReport, error) {
	records, err := s.keywordRepo.GetAll(ctx)
	if err != nil {
		return TabReport{}, fmt.Errorf("load keywords: %w", err)
	}
	latest := sheetcore.BuildLatestIndex(records)
	s.log.Info("Content-keyed reconciliation starting", "tab", tabName, "records", len(records), "uniqueKeys", len(latest))

	return s.contentKeyedTab(ctx, sheetID, tabName, latest)
}

func (s *reconcileService) contentKeyedTab(ctx context.Context, sheetID, tabName string, latest map[string]types.Keyword) (TabReport, error) {
	table, err := s.sheets.Read(ctx, sheetID, tabName)
	if err != nil {
		return TabReport{}, err
	}

	plan := sheetcore.PlanContentKeyed(table, latest)
	report := TabReport{Title: tabName, Matched: plan.Matched, Skipped: plan.Skipped, Reason: plan.Reason}
	if plan.Skipped {
		s.log.Warn("Tab skipped", "tab", tabName, "reason", plan.Reason)
		return report, nil
	}
	if len(plan.Updates) == 0 {
		return report, nil
	}

	updated, err := s.sheets.BatchUpdate(ctx, sheetID, tabName, plan.Updates)
	if err != nil {
		return report, fmt.Errorf("write visibility to tab %s: %w", tabName, err)
	}
	report.UpdatedCells = updated
	s.log.Info("Tab reconciled", "tab", tabName, "matched", plan.Matched, "updatedCells", updated)
	return report, nil
}

// ContentKeyedAll runs the content-keyed pass over every configured
// partition tab. A tab that cannot be matched is skipped with its reason;
// the others still complete.
func (s *reconcileService) ContentKeyedAll(ctx context.Context, sheetID string) (BatchReport, error) {
	records, err := s.keywordRepo.GetAll(ctx)
	if err != nil {
		return BatchReport{}, fmt.Errorf("load keywords: %w", err)
	}
	latest := sheetcore.BuildLatestIndex(records)

	tabs := s.cfg.Keywords.Tabs
	batch := BatchReport{}
	for _, tab := range []config.TabConfig{tabs.Package, tabs.Dogmaru, tabs.DogmaruExclude, tabs.Pet} {
		if tab.Name == "" {
			continue
		}
		report, err := s.contentKeyedTab(ctx, sheetID, tab.Name, latest)
		if err != nil {
			return batch, err
		}
		batch.Results = append(batch.Results, report)
		batch.TotalUpdated += report.UpdatedCells
	}
	return batch, nil
}

// Sequential reconciles every managed tab by consuming records in strict
// updatedAt order with one cursor across tabs. Tabs are those whose title
// contains the configured marker, processed in ascending numeric tab id
// order; both orderings are load-bearing and must not change.
func (s *reconcileService) Sequential(ctx context.Context, sheetID string) (BatchReport, error) {
	allTabs, err := s.sheets.ListTabs(ctx, sheetID)
	if err != nil {
		return BatchReport{}, fmt.Errorf("list tabs: %w", err)
	}
	managed := make([]sheetcore.TabInfo, 0, len(allTabs))
	for _, tab := range allTabs {
		if strings.Contains(tab.Title, s.cfg.ManagedTabMarker) {
			managed = append(managed, tab)
		}
	}
	sort.Slice(managed, func(i, j int) bool { return managed[i].ID < managed[j].ID })
	if len(managed) == 0 {
		return BatchReport{}, fmt.Errorf("no tabs matching marker %q", s.cfg.ManagedTabMarker)
	}

	records, err := s.keywordRepo.GetAllByUpdatedAt(ctx)
	if err != nil {
		return BatchReport{}, fmt.Errorf("load keywords: %w", err)
	}
	s.log.Info("Sequential reconciliation starting", "tabs", len(managed), "records", len(records))

	cursor := &sheetcore.Cursor{}
	batch := BatchReport{}
	for _, tab := range managed {
		table, err := s.sheets.Read(ctx, sheetID, tab.Title)
		if err != nil {
			return batch, err
		}

		plan, err := sheetcore.PlanSequentialTab(tab.Title, table, records, cursor)
		if err != nil {
			// precondition mismatch aborts the whole batch: no partial
			// writes for this tab or any later one
			return batch, err
		}
		for _, warning := range plan.Warnings {
			s.log.Warn("Keyword order drift",
				"tab", tab.Title,
				"row", warning.RowNumber,
				"sheetKeyword", warning.SheetKeyword,
				"dbKeyword", warning.RecordKeyword,
				"cursor", warning.CursorPosition)
		}

		report := TabReport{Title: tab.Title, Matched: plan.RowsMatched, Skipped: plan.Skipped, Reason: plan.Reason}
		if len(plan.Updates) > 0 {
			updated, err := s.sheets.BatchUpdate(ctx, sheetID, tab.Title, plan.Updates)
			if err != nil {
				return batch, fmt.Errorf("write visibility to tab %s: %w", tab.Title, err)
			}
			report.UpdatedCells = updated
		}
		batch.Results = append(batch.Results, report)
		batch.TotalUpdated += report.UpdatedCells
		s.log.Info("Tab consumed", "tab", tab.Title, "rows", plan.RowsMatched, "cursor", cursor.Pos())
	}
	return batch, nil
}
