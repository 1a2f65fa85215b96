package sheetcore

import (
	"errors"
	"strings"

	"github.com/wooil/sheetsync/internal/types"
)

// ErrMissingColumns aborts an import before any database mutation happens;
// the existing partition stays untouched when the sheet cannot be parsed.
var ErrMissingColumns = errors.New("required columns not found in sheet header")

// ParseKeywordRows turns a raw sheet table into normalized keyword records
// for one partition: resolve columns, unroll the company carry-forward, keep
// only rows with both a company and a keyword.
func ParseKeywordRows(table SheetTable, partition types.Partition) ([]types.Keyword, error) {
	if len(table) == 0 {
		return nil, nil
	}
	cols := ResolveColumns(table[0])
	if !cols.HasRequired() {
		return nil, ErrMissingColumns
	}

	records := []types.Keyword{}
	for _, row := range Unroll(table[1:], cols) {
		if row.Company == "" {
			continue
		}
		records = append(records, types.Keyword{
			Company:      row.Company,
			Keyword:      row.Keyword,
			Visibility:   ParseVisibilityCell(row.Visibility),
			PopularTopic: row.PopularTopic,
			URL:          row.URL,
			SheetType:    partition,
		})
	}
	return records, nil
}

// Rows mentioning any of these mark the start of the undelivered-materials
// section at the bottom of the monthly-guarantee sheet; everything from
// there down is not keyword data. The second spelling is a recurring typo
// in the sheet itself.
var rootStopKeywords = []string{"자료 미전달", "지료 미전달", "미전달 리스트"}

func isRootStopRow(row SheetRow) bool {
	rowText := strings.ToLower(strings.Join(row, " "))
	for _, stop := range rootStopKeywords {
		if strings.Contains(rowText, strings.ToLower(stop)) {
			return true
		}
	}
	return false
}

// ParseRootKeywordRows parses the monthly-guarantee sheet. Unlike the
// standard sheets its header may sit below leading blank rows, parsing stops
// at the undelivered-materials section, and the stored keyword is composite:
// "<base>(<company>)".
func ParseRootKeywordRows(table SheetTable) ([]types.RootKeyword, error) {
	if len(table) == 0 {
		return nil, nil
	}

	headerIdx := -1
	for i, row := range table {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				headerIdx = i
				break
			}
		}
		if headerIdx != -1 {
			break
		}
	}
	if headerIdx == -1 {
		return nil, errors.New("no header row found in root sheet")
	}

	cols := ResolveRootColumns(table[headerIdx])
	if cols.Keyword == -1 || cols.Company == -1 {
		return nil, ErrMissingColumns
	}

	dataRows := table[headerIdx+1:]
	for i, row := range dataRows {
		if isRootStopRow(row) {
			dataRows = dataRows[:i]
			break
		}
	}

	currentCompany := ""
	records := []types.RootKeyword{}
	for _, row := range dataRows {
		if company := strings.TrimSpace(Cell(row, cols.Company)); company != "" {
			currentCompany = company
		}
		keyword := Cell(row, cols.Keyword)
		if keyword == "" || currentCompany == "" {
			continue
		}
		records = append(records, types.RootKeyword{
			Company:    currentCompany,
			Keyword:    keyword + "(" + currentCompany + ")",
			Visibility: ParseVisibilityCell(Cell(row, cols.Visibility)),
			URL:        Cell(row, cols.URL),
		})
	}
	return records, nil
}
