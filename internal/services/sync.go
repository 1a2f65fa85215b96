package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/wooil/sheetsync/internal/clients/sheets"
	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

// ReplaceResult reports one partition replace.
type ReplaceResult struct {
	Deleted  int64 `json:"deleted"`
	Inserted int64 `json:"inserted"`
}

// SyncService is the sheet → database direction: parse a sheet and replace
// the matching partition (or the whole root collection) wholesale.
type SyncService interface {
	SyncPartition(ctx context.Context, sheetID, tabName string, partition types.Partition) (ReplaceResult, error)
	SyncAll(ctx context.Context) (map[types.Partition]ReplaceResult, error)
	SyncRoot(ctx context.Context) (ReplaceResult, error)
}

type syncService struct {
	log         *logger.Logger
	cfg         config.Config
	sheets      sheets.Client
	keywordRepo repos.KeywordRepo
	rootRepo    repos.RootKeywordRepo

	// dedupes concurrent triggers for the same partition so a double-click
	// on the dashboard cannot interleave two delete-then-insert windows
	group singleflight.Group
}

func NewSyncService(log *logger.Logger, cfg config.Config, sheetsClient sheets.Client, keywordRepo repos.KeywordRepo, rootRepo repos.RootKeywordRepo) SyncService {
	return &syncService{
		log:         log.With("service", "SyncService"),
		cfg:         cfg,
		sheets:      sheetsClient,
		keywordRepo: keywordRepo,
		rootRepo:    rootRepo,
	}
}

// SyncPartition reads and parses the tab, then replaces the partition.
// Parsing failure aborts before any deletion, so an unparsable sheet leaves
// the existing partition untouched.
func (s *syncService) SyncPartition(ctx context.Context, sheetID, tabName string, partition types.Partition) (ReplaceResult, error) {
	result, err, _ := s.group.Do(string(partition), func() (interface{}, error) {
		return s.syncPartition(ctx, sheetID, tabName, partition)
	})
	if err != nil {
		return ReplaceResult{}, err
	}
	return result.(ReplaceResult), nil
}

func (s *syncService) syncPartition(ctx context.Context, sheetID, tabName string, partition types.Partition) (ReplaceResult, error) {
	s.log.Info("Partition sync starting", "partition", partition, "tab", tabName)

	table, err := s.sheets.Read(ctx, sheetID, tabName)
	if err != nil {
		return ReplaceResult{}, err
	}
	records, err := sheetcore.ParseKeywordRows(table, partition)
	if err != nil {
		return ReplaceResult{}, fmt.Errorf("parse tab %s: %w", tabName, err)
	}
	s.log.Info("Sheet parsed", "partition", partition, "records", len(records))

	deleted, inserted, err := s.keywordRepo.ReplacePartition(ctx, partition, records)
	if err != nil {
		return ReplaceResult{}, err
	}
	return ReplaceResult{Deleted: deleted, Inserted: inserted}, nil
}

// SyncAll refreshes the three standing partitions from their configured
// tabs, sequentially; record order within a partition must mirror sheet
// order for sequential reconciliation to stay meaningful.
func (s *syncService) SyncAll(ctx context.Context) (map[types.Partition]ReplaceResult, error) {
	sheetID := s.cfg.Keywords.SheetID
	results := make(map[types.Partition]ReplaceResult)
	for _, partition := range []types.Partition{
		types.PartitionPackage, types.PartitionDogmaru, types.PartitionDogmaruExclude,
	} {
		tab, err := s.cfg.Keywords.Tabs.ByPartition(partition)
		if err != nil {
			return results, err
		}
		result, err := s.SyncPartition(ctx, sheetID, tab.Name, partition)
		if err != nil {
			return results, fmt.Errorf("sync partition %s: %w", partition, err)
		}
		results[partition] = result
		s.log.Info("Partition synced", "partition", partition, "deleted", result.Deleted, "inserted", result.Inserted)
	}
	return results, nil
}

// SyncRoot replaces the whole root-keyword collection from the
// monthly-guarantee sheet.
func (s *syncService) SyncRoot(ctx context.Context) (ReplaceResult, error) {
	result, err, _ := s.group.Do("root", func() (interface{}, error) {
		target := s.cfg.RootSync
		s.log.Info("Root sync starting", "sheetId", target.SheetID, "tab", target.TabName)

		table, err := s.sheets.Read(ctx, target.SheetID, target.TabName)
		if err != nil {
			return ReplaceResult{}, err
		}
		records, err := sheetcore.ParseRootKeywordRows(table)
		if err != nil {
			return ReplaceResult{}, fmt.Errorf("parse root sheet: %w", err)
		}
		s.log.Info("Root sheet parsed", "records", len(records))

		deleted, inserted, err := s.rootRepo.ReplaceAll(ctx, records)
		if err != nil {
			return ReplaceResult{}, err
		}
		return ReplaceResult{Deleted: deleted, Inserted: inserted}, nil
	})
	if err != nil {
		return ReplaceResult{}, err
	}
	return result.(ReplaceResult), nil
}
