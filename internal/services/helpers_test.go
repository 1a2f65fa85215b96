package services

import (
	"context"
	"fmt"
	"time"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		panic(err)
	}
	return log
}

// fakeSheets is an in-memory sheets.Client recording every write.
type fakeSheets struct {
	tables map[string]sheetcore.SheetTable
	tabs   map[string][]sheetcore.TabInfo

	batchUpdates []recordedBatch
	cleared      []string
	readErr      error
}

type recordedBatch struct {
	SheetID string
	TabName string
	Updates []sheetcore.Update
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		tables: map[string]sheetcore.SheetTable{},
		tabs:   map[string][]sheetcore.TabInfo{},
	}
}

func tableKey(sheetID, tabName string) string { return sheetID + "|" + tabName }

func (f *fakeSheets) Read(ctx context.Context, sheetID, tabName string) (sheetcore.SheetTable, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.tables[tableKey(sheetID, tabName)], nil
}

func (f *fakeSheets) BatchUpdate(ctx context.Context, sheetID, tabName string, updates []sheetcore.Update) (int64, error) {
	f.batchUpdates = append(f.batchUpdates, recordedBatch{SheetID: sheetID, TabName: tabName, Updates: updates})
	cells := int64(0)
	for _, update := range updates {
		for _, row := range update.Values {
			cells += int64(len(row))
		}
	}
	return cells, nil
}

func (f *fakeSheets) Append(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error {
	return nil
}

func (f *fakeSheets) Update(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error {
	return nil
}

func (f *fakeSheets) ListTabs(ctx context.Context, sheetID string) ([]sheetcore.TabInfo, error) {
	return f.tabs[sheetID], nil
}

func (f *fakeSheets) ClearColumns(ctx context.Context, sheetID, tabName, colRange string) error {
	f.cleared = append(f.cleared, tableKey(sheetID, tabName)+"|"+colRange)
	return nil
}

// fakeKeywordRepo is an in-memory repos.KeywordRepo preserving insert order.
type fakeKeywordRepo struct {
	records []types.Keyword
	stats   types.VisibilityStats
}

func (f *fakeKeywordRepo) GetAll(ctx context.Context) ([]types.Keyword, error) {
	return append([]types.Keyword(nil), f.records...), nil
}

func (f *fakeKeywordRepo) GetAllByUpdatedAt(ctx context.Context) ([]types.Keyword, error) {
	return append([]types.Keyword(nil), f.records...), nil
}

func (f *fakeKeywordRepo) GetByPartition(ctx context.Context, partition types.Partition) ([]types.Keyword, error) {
	var out []types.Keyword
	for _, kw := range f.records {
		if kw.SheetType == partition {
			out = append(out, kw)
		}
	}
	return out, nil
}

func (f *fakeKeywordRepo) GetByCompany(ctx context.Context, company string) ([]types.Keyword, error) {
	var out []types.Keyword
	for _, kw := range f.records {
		if kw.Company == company {
			out = append(out, kw)
		}
	}
	return out, nil
}

func (f *fakeKeywordRepo) GetByCompanies(ctx context.Context, companies []string) ([]types.Keyword, error) {
	var out []types.Keyword
	for _, kw := range f.records {
		for _, company := range companies {
			if kw.Company == company {
				out = append(out, kw)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeKeywordRepo) ReplacePartition(ctx context.Context, partition types.Partition, records []types.Keyword) (int64, int64, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}
	var kept []types.Keyword
	deleted := int64(0)
	for _, kw := range f.records {
		if kw.SheetType == partition {
			deleted++
			continue
		}
		kept = append(kept, kw)
	}
	now := time.Now()
	for i := range records {
		records[i].SheetType = partition
		records[i].LastChecked = now
	}
	f.records = append(kept, records...)
	return deleted, int64(len(records)), nil
}

func (f *fakeKeywordRepo) UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.Keyword, error) {
	for i := range f.records {
		if f.records[i].Company == company && f.records[i].Keyword == keyword {
			f.records[i].Visibility = visibility
			return &f.records[i], nil
		}
	}
	kw := types.Keyword{Company: company, Keyword: keyword, Visibility: visibility}
	f.records = append(f.records, kw)
	return &kw, nil
}

func (f *fakeKeywordRepo) Stats(ctx context.Context) (types.VisibilityStats, error) {
	return f.stats, nil
}

// fakeRootRepo is an in-memory repos.RootKeywordRepo.
type fakeRootRepo struct {
	records []types.RootKeyword
}

func (f *fakeRootRepo) GetAllByUpdatedAt(ctx context.Context) ([]types.RootKeyword, error) {
	return append([]types.RootKeyword(nil), f.records...), nil
}

func (f *fakeRootRepo) GetByCompany(ctx context.Context, company string) ([]types.RootKeyword, error) {
	var out []types.RootKeyword
	for _, kw := range f.records {
		if kw.Company == company {
			out = append(out, kw)
		}
	}
	return out, nil
}

func (f *fakeRootRepo) ReplaceAll(ctx context.Context, records []types.RootKeyword) (int64, int64, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}
	deleted := int64(len(f.records))
	f.records = append([]types.RootKeyword(nil), records...)
	return deleted, int64(len(records)), nil
}

func (f *fakeRootRepo) UpsertVisibility(ctx context.Context, company, keyword string, visibility bool) (*types.RootKeyword, error) {
	return nil, fmt.Errorf("not implemented")
}
