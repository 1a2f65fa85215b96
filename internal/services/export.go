package services

import (
	"context"
	"fmt"

	"github.com/wooil/sheetsync/internal/clients/sheets"
	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

// Column prefixes covering every managed export column; clearing them wipes
// old rows that the new data set may no longer reach.
const (
	exportClearRange     = "A:J"
	rootExportClearRange = "A:I"
)

// ExportResult reports a full-rewrite export.
type ExportResult struct {
	Title        string `json:"title"`
	TotalRows    int    `json:"totalRows"`
	UpdatedCells int64  `json:"updatedCells"`
	Message      string `json:"message,omitempty"`
}

// ExportService is the full-rewrite path: regenerate a tab entirely from the
// database when incremental matching has broken down.
type ExportService interface {
	ExportPartition(ctx context.Context, sheetID, tabName string, partition types.Partition) (ExportResult, error)
	ExportCompanies(ctx context.Context, sheetID, tabName string, companies []string) (ExportResult, error)
	ExportRoot(ctx context.Context) (ExportResult, error)
}

type exportService struct {
	log         *logger.Logger
	cfg         config.Config
	sheets      sheets.Client
	keywordRepo repos.KeywordRepo
	rootRepo    repos.RootKeywordRepo
}

func NewExportService(log *logger.Logger, cfg config.Config, sheetsClient sheets.Client, keywordRepo repos.KeywordRepo, rootRepo repos.RootKeywordRepo) ExportService {
	return &exportService{
		log:         log.With("service", "ExportService"),
		cfg:         cfg,
		sheets:      sheetsClient,
		keywordRepo: keywordRepo,
		rootRepo:    rootRepo,
	}
}

// writeRewrite clears the column prefix and writes header + rows at A1.
// The no-data guard runs before the clear: an empty partition must not blank
// out a sheet.
func (s *exportService) writeRewrite(ctx context.Context, sheetID, tabName, clearRange string, rows [][]string) (ExportResult, error) {
	result := ExportResult{Title: tabName, TotalRows: len(rows)}
	if len(rows) == 0 {
		result.Message = "DB에 데이터가 없습니다"
		s.log.Warn("Export skipped, no records", "tab", tabName)
		return result, nil
	}

	if err := s.sheets.ClearColumns(ctx, sheetID, tabName, clearRange); err != nil {
		return result, err
	}
	table := sheetcore.BuildExportTable(rows)
	updated, err := s.sheets.BatchUpdate(ctx, sheetID, tabName, []sheetcore.Update{
		{Range: "A1", Values: table},
	})
	if err != nil {
		return result, fmt.Errorf("rewrite tab %s: %w", tabName, err)
	}
	result.UpdatedCells = updated
	s.log.Info("Tab rewritten", "tab", tabName, "rows", len(rows), "updatedCells", updated)
	return result, nil
}

func (s *exportService) ExportPartition(ctx context.Context, sheetID, tabName string, partition types.Partition) (ExportResult, error) {
	records, err := s.keywordRepo.GetByPartition(ctx, partition)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load partition %s: %w", partition, err)
	}
	rows := make([][]string, len(records))
	for i, kw := range records {
		rows[i] = sheetcore.MapKeywordRow(kw)
	}
	return s.writeRewrite(ctx, sheetID, tabName, exportClearRange, rows)
}

// ExportCompanies is the pet-sheet variant: records selected by company
// instead of partition.
func (s *exportService) ExportCompanies(ctx context.Context, sheetID, tabName string, companies []string) (ExportResult, error) {
	records, err := s.keywordRepo.GetByCompanies(ctx, companies)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load companies %v: %w", companies, err)
	}
	rows := make([][]string, len(records))
	for i, kw := range records {
		rows[i] = sheetcore.MapKeywordRow(kw)
	}
	return s.writeRewrite(ctx, sheetID, tabName, exportClearRange, rows)
}

func (s *exportService) ExportRoot(ctx context.Context) (ExportResult, error) {
	records, err := s.rootRepo.GetAllByUpdatedAt(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("load root keywords: %w", err)
	}
	rows := make([][]string, len(records))
	for i, kw := range records {
		rows[i] = sheetcore.MapRootKeywordRow(kw)
	}
	target := s.cfg.RootImport
	return s.writeRewrite(ctx, target.SheetID, target.TabName, rootExportClearRange, rows)
}
