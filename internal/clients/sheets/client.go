// Package sheets wraps the Google Sheets API behind the small surface the
// reconciliation services need: read a tab, batch-write cells, list tabs,
// clear a column range.
package sheets

import (
	"context"
	"fmt"

	gsheets "google.golang.org/api/sheets/v4"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/sheetcore"
)

// DefaultRange covers every column the managed sheets use.
const DefaultRange = "A:ZZ"

type Client interface {
	Read(ctx context.Context, sheetID, tabName string) (sheetcore.SheetTable, error)
	BatchUpdate(ctx context.Context, sheetID, tabName string, updates []sheetcore.Update) (int64, error)
	Append(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error
	Update(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error
	ListTabs(ctx context.Context, sheetID string) ([]sheetcore.TabInfo, error)
	ClearColumns(ctx context.Context, sheetID, tabName, colRange string) error
}

type client struct {
	svc *gsheets.Service
	log *logger.Logger
}

func NewClient(ctx context.Context, log *logger.Logger) (Client, error) {
	svc, err := gsheets.NewService(ctx, clientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("init sheets service: %w", err)
	}
	return &client{svc: svc, log: log.With("client", "SheetsClient")}, nil
}

func fullRange(tabName, rangeA1 string) string {
	if tabName == "" {
		return rangeA1
	}
	return tabName + "!" + rangeA1
}

func toCellValues(values [][]string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		out[i] = cells
	}
	return out
}

// Read returns the tab as a string table. A tab with no data comes back
// empty, not as an error; only an invalid spreadsheet id fails.
func (c *client) Read(ctx context.Context, sheetID, tabName string) (sheetcore.SheetTable, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(sheetID, fullRange(tabName, DefaultRange)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s tab %s: %w", sheetID, tabName, err)
	}
	table := make(sheetcore.SheetTable, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		table[i] = cells
	}
	return table, nil
}

func (c *client) BatchUpdate(ctx context.Context, sheetID, tabName string, updates []sheetcore.Update) (int64, error) {
	data := make([]*gsheets.ValueRange, len(updates))
	for i, update := range updates {
		data[i] = &gsheets.ValueRange{
			Range:  fullRange(tabName, update.Range),
			Values: toCellValues(update.Values),
		}
	}
	req := &gsheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(sheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("batch update sheet %s: %w", sheetID, err)
	}
	return resp.TotalUpdatedCells, nil
}

func (c *client) Append(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error {
	body := &gsheets.ValueRange{Values: toCellValues(values)}
	_, err := c.svc.Spreadsheets.Values.Append(sheetID, fullRange(tabName, rangeA1), body).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheetID, err)
	}
	return nil
}

func (c *client) Update(ctx context.Context, sheetID, tabName, rangeA1 string, values [][]string) error {
	body := &gsheets.ValueRange{Values: toCellValues(values)}
	_, err := c.svc.Spreadsheets.Values.Update(sheetID, fullRange(tabName, rangeA1), body).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update sheet %s: %w", sheetID, err)
	}
	return nil
}

func (c *client) ListTabs(ctx context.Context, sheetID string) ([]sheetcore.TabInfo, error) {
	resp, err := c.svc.Spreadsheets.Get(sheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get metadata for sheet %s: %w", sheetID, err)
	}
	tabs := make([]sheetcore.TabInfo, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		tabs = append(tabs, sheetcore.TabInfo{
			Title: sheet.Properties.Title,
			ID:    sheet.Properties.SheetId,
		})
	}
	return tabs, nil
}

// ClearColumns clears cell values in colRange (e.g. "A:I"); formatting and
// column structure stay intact.
func (c *client) ClearColumns(ctx context.Context, sheetID, tabName, colRange string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(sheetID, fullRange(tabName, colRange), &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s on sheet %s: %w", colRange, sheetID, err)
	}
	return nil
}
